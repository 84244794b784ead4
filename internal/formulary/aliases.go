package formulary

// Short names for the most used functions.
var (
	Vth      = ThermalSpeed
	VthKappa = KappaThermalSpeed
	Oc       = Gyrofrequency
	Wc       = Gyrofrequency
	Rc       = Gyroradius
	RhoC     = Gyroradius
	Wp       = PlasmaFrequency
	LambdaD  = DebyeLength
	ND       = DebyeNumber
	Cwp      = InertialLength
	Pmag     = MagneticPressure
	Ub       = MagneticEnergyDensity
	Wuh      = UpperHybridFrequency
	Wlh      = LowerHybridFrequency
	BetaH    = HallParameter
	Re       = ReynoldsNumber
	Rm       = MagneticReynoldsNumber
	DB       = BohmDiffusion
	Cs       = IonSoundSpeed
	Rho      = MassDensity
	Va       = AlfvenSpeed
	Pth      = ThermalPressure
)
