package templates

// layout wraps email content in the shared header and footer. Content is
// spliced in with Go string concatenation so every template stays a single
// Liquid source.
func layout(content string) string {
	return `<mjml>
  <mj-head>
    <mj-attributes>
      <mj-all font-family="Helvetica, Arial, sans-serif" />
      <mj-text font-size="15px" line-height="24px" color="#1f2937" />
      <mj-button background-color="#6366f1" color="#ffffff" font-size="15px" border-radius="6px" />
    </mj-attributes>
  </mj-head>
  <mj-body background-color="#f3f4f6" width="600px">
    <mj-section padding="24px 0 8px">
      <mj-column>
        <mj-text align="center" font-size="22px" font-weight="bold" color="#4338ca">{{ app_name | default: "Harmonic" | escape }}</mj-text>
      </mj-column>
    </mj-section>
    <mj-section background-color="#ffffff" border-radius="8px" padding="24px">
      <mj-column>
` + content + `
      </mj-column>
    </mj-section>
    <mj-section>
      <mj-column>
        <mj-text align="center" font-size="12px" color="#6b7280">You received this email because of an action on your {{ app_name | default: "Harmonic" | escape }} account.</mj-text>
      </mj-column>
    </mj-section>
  </mj-body>
</mjml>`
}
