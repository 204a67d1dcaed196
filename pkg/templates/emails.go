package templates

// PasswordReset expects reset_link and optionally first_name.
var PasswordReset = EmailTemplate{
	Name:    "password_reset",
	Subject: `Reset your {{ app_name | default: "Harmonic" }} password`,
	MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Reset your password</mj-text>
        <mj-text>Hello{% if first_name %} {{ first_name | escape }}{% endif %},</mj-text>
        <mj-text>We received a request to reset the password for your account. Click the button below to choose a new one.</mj-text>
        <mj-button href="{{ reset_link }}">Reset password</mj-button>
        <mj-text font-size="13px" color="#6b7280">If you did not ask for a reset you can ignore this email. Your password will not change.</mj-text>`),
}

// ClientInvite expects first_name, coach_name, email, temp_password and login_url.
var ClientInvite = EmailTemplate{
	Name:    "client_invite",
	Subject: `{% if coach_name %}{{ coach_name }} invited you{% else %}You're invited{% endif %} to {{ app_name | default: "Harmonic" }}`,
	MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Welcome, {{ first_name | escape }}</mj-text>
        <mj-text>{% if coach_name %}{{ coach_name | escape }} has{% else %}Your coach has{% endif %} created an account for you so you can take your harmonic assessment.</mj-text>
        <mj-text>Email: <strong>{{ email | escape }}</strong><br />Temporary password: <strong>{{ temp_password | escape }}</strong></mj-text>
        <mj-button href="{{ login_url }}">Sign in</mj-button>
        <mj-text font-size="13px" color="#6b7280">You will be asked to choose a new password after signing in.</mj-text>`),
}
