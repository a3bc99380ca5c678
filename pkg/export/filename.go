package export

const (
	filenamePrefix  = "prescription-"
	filenameDefault = "patient"
	filenameExt     = ".html"
)

// Filename derives the download name from the patient name. The name is used
// verbatim: characters that are invalid in file names on some platforms are
// not replaced.
func Filename(patientName string) string {
	name := patientName
	if name == "" {
		name = filenameDefault
	}
	return filenamePrefix + name + filenameExt
}
