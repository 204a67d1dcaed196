package templates

// Templates for the Supabase Send Email hook, keyed by email_action_type.
// They receive confirmation_url, token and new_email.
var supabaseTemplates = map[string]EmailTemplate{
	"signup": {
		Name:    "supabase_signup",
		Subject: "Confirm your email",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Confirm your email</mj-text>
        <mj-text>Follow the link below to confirm your email address.</mj-text>
        <mj-button href="{{ confirmation_url }}">Confirm email</mj-button>
        <mj-text font-size="13px" color="#6b7280">Or enter this code: {{ token | escape }}</mj-text>`),
	},
	"magiclink": {
		Name:    "supabase_magiclink",
		Subject: "Your sign-in link",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Sign in</mj-text>
        <mj-text>Use the link below to sign in. It can only be used once.</mj-text>
        <mj-button href="{{ confirmation_url }}">Sign in</mj-button>
        <mj-text font-size="13px" color="#6b7280">Or enter this code: {{ token | escape }}</mj-text>`),
	},
	"recovery": {
		Name:    "supabase_recovery",
		Subject: "Reset your password",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Reset your password</mj-text>
        <mj-text>Follow the link below to choose a new password.</mj-text>
        <mj-button href="{{ confirmation_url }}">Reset password</mj-button>
        <mj-text font-size="13px" color="#6b7280">If you did not ask for a reset you can ignore this email.</mj-text>`),
	},
	"invite": {
		Name:    "supabase_invite",
		Subject: "You have been invited",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">You have been invited</mj-text>
        <mj-text>You have been invited to create an account. Follow the link below to accept.</mj-text>
        <mj-button href="{{ confirmation_url }}">Accept invitation</mj-button>`),
	},
	"email_change": {
		Name:    "supabase_email_change",
		Subject: "Confirm your new email",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Confirm email change</mj-text>
        <mj-text>Follow the link below to confirm the change of your email to {{ new_email | escape }}.</mj-text>
        <mj-button href="{{ confirmation_url }}">Confirm email change</mj-button>`),
	},
	"reauthentication": {
		Name:    "supabase_reauthentication",
		Subject: "Confirm reauthentication",
		MJML: layout(`        <mj-text font-size="20px" font-weight="bold">Confirm it's you</mj-text>
        <mj-text>Enter this code to continue:</mj-text>
        <mj-text font-size="24px" letter-spacing="3px" font-weight="bold">{{ token | escape }}</mj-text>`),
	},
}

// SupabaseTemplate returns the hook template for an email action type
func SupabaseTemplate(actionType string) (EmailTemplate, bool) {
	tpl, ok := supabaseTemplates[actionType]
	return tpl, ok
}

// SupabaseActionTypes lists the action types with a template
func SupabaseActionTypes() []string {
	return []string{"signup", "magiclink", "recovery", "invite", "email_change", "reauthentication"}
}
