package letterhead

const defaultHeader = `
<div>
  <h1 style="font-size: 28px; margin-bottom: 8px; color: #2563eb;">Dr. Sarah Johnson</h1>
  <p style="font-size: 16px; margin-bottom: 4px;">MBBS, MD - Internal Medicine</p>
  <p style="margin-bottom: 4px;">Johnson Medical Center | 123 Healthcare Ave, Medical City</p>
  <p style="margin-bottom: 4px;">Phone: +1 (555) 123-4567 | Email: dr.sarah@healthcenter.com</p>
  <p>Reg. No: MC/2020/12345</p>
</div>
`

const defaultFooter = `
<div>
  <p style="margin-bottom: 4px;">This prescription is computer generated and does not require signature</p>
  <p style="margin-bottom: 4px;">For emergencies, call: +1 (555) 911-HELP</p>
  <p>Visit us at: www.johnsonmedicalcenter.com</p>
</div>
`

// Default returns the built-in sample letterhead, a one-step substitute for
// manual entry.
func Default() Template {
	return Template{Header: defaultHeader, Footer: defaultFooter}
}
