// Package schema holds the DDL of the application tables.
//
// The hosted database owns the canonical schema. These statements recreate it
// for local development and tests and are safe to run repeatedly.
package schema

// TableNames in creation order
var TableNames = []string{"profiles", "harmonic_states", "questions", "assessments", "responses"}

// TableDefinitions creates the tables in dependency order
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		role TEXT NOT NULL DEFAULT 'respondent'
			CHECK (role IN ('respondent', 'coach', 'trainer', 'admin', 'partner')),
		coach_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
		trainer_id UUID REFERENCES profiles(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles (email)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_coach_id ON profiles (coach_id)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_trainer_id ON profiles (trainer_id)`,
	`CREATE TABLE IF NOT EXISTS harmonic_states (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		color TEXT,
		coaching_tips TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		question_text TEXT NOT NULL,
		harmonic_state TEXT NOT NULL,
		"order" INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		dominant_state TEXT,
		results JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		completed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_user_id ON assessments (user_id)`,
	`CREATE TABLE IF NOT EXISTS responses (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		assessment_id UUID NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
		question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (assessment_id, question_id)
	)`,
}

// AuthUsersExistsQuery reports whether the Supabase auth schema is present
const AuthUsersExistsQuery = `SELECT to_regclass('auth.users') IS NOT NULL`

// AuthTriggerDefinitions install handle_new_user, which materializes a
// profile row for every new auth user. coach_id is left for the inviter to set.
var AuthTriggerDefinitions = []string{
	`CREATE OR REPLACE FUNCTION public.handle_new_user()
	RETURNS trigger
	LANGUAGE plpgsql
	SECURITY DEFINER SET search_path = public
	AS $$
	BEGIN
		INSERT INTO public.profiles (id, email, first_name, last_name, role)
		VALUES (
			NEW.id,
			NEW.email,
			NEW.raw_user_meta_data->>'first_name',
			NEW.raw_user_meta_data->>'last_name',
			COALESCE(NEW.raw_user_meta_data->>'role', 'respondent')
		)
		ON CONFLICT (id) DO NOTHING;
		RETURN NEW;
	END;
	$$`,
	`DROP TRIGGER IF EXISTS on_auth_user_created ON auth.users`,
	`CREATE TRIGGER on_auth_user_created
		AFTER INSERT ON auth.users
		FOR EACH ROW EXECUTE FUNCTION public.handle_new_user()`,
}
