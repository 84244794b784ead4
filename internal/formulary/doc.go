// Package formulary implements plasma parameter calculations.
//
// Every function takes dimension-tagged quantities and particle specifiers,
// validates its inputs and result through a validate.Spec, computes in SI
// and returns a quantity.Quantity. Optional parameters are functional
// options shared across the package (WithMethod, WithZMean, ...); each
// function reads only the options that apply to it.
//
// Short aliases (Vth, Oc, Wp, ...) are plain variable renamings of the
// canonical functions and are also listed in the Registry, which the CLI
// uses to look functions up by name.
package formulary
