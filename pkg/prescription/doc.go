// Package prescription defines the prescription aggregate and the editor
// operations that produce new values from it.
//
// A Data value is always total: every field is present and "no data" is the
// empty string or an empty slice. Editor operations never patch in place; they
// return a fresh Data whose slices do not alias the input, so any snapshot a
// caller still holds stays valid.
//
// Updates addressed by an element id that matches nothing leave the value
// unchanged and report no error. Callers that need to fail loudly can check
// HasMedicine/HasTest/HasDiagnosis first.
package prescription
