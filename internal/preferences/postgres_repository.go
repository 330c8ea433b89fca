package preferences

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawmatch/pawmatch/internal/animal"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL preferences repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const preferencesColumns = `
	id, user_id,
	preferred_types, preferred_genders,
	min_age_years, max_age_years, min_weight_kg, max_weight_kg,
	experience_level, previous_types, housing_type, family_composition,
	has_other_pets, other_pets_details,
	time_availability, activity_level, work_schedule,
	prefers_trained, accepts_special_needs, prefers_vaccinated, prefers_sterilized,
	search_radius_km, lat, lon, location_text,
	monthly_budget, motivation,
	is_complete, completed_at,
	created_at, updated_at
`

// GetByUser retrieves the preferences record for a user.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*Preferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = $1`

	p, err := r.scanPreferences(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListComplete retrieves all complete preference records, oldest first.
func (r *PostgresRepository) ListComplete(ctx context.Context) ([]*Preferences, error) {
	query := `SELECT ` + preferencesColumns + `
		FROM user_preferences
		WHERE is_complete = TRUE
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Preferences
	for rows.Next() {
		p, err := r.scanPreferences(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Upsert creates or replaces the preferences record for its user.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Preferences) error {
	query := `
		INSERT INTO user_preferences (` + preferencesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_types = EXCLUDED.preferred_types,
			preferred_genders = EXCLUDED.preferred_genders,
			min_age_years = EXCLUDED.min_age_years,
			max_age_years = EXCLUDED.max_age_years,
			min_weight_kg = EXCLUDED.min_weight_kg,
			max_weight_kg = EXCLUDED.max_weight_kg,
			experience_level = EXCLUDED.experience_level,
			previous_types = EXCLUDED.previous_types,
			housing_type = EXCLUDED.housing_type,
			family_composition = EXCLUDED.family_composition,
			has_other_pets = EXCLUDED.has_other_pets,
			other_pets_details = EXCLUDED.other_pets_details,
			time_availability = EXCLUDED.time_availability,
			activity_level = EXCLUDED.activity_level,
			work_schedule = EXCLUDED.work_schedule,
			prefers_trained = EXCLUDED.prefers_trained,
			accepts_special_needs = EXCLUDED.accepts_special_needs,
			prefers_vaccinated = EXCLUDED.prefers_vaccinated,
			prefers_sterilized = EXCLUDED.prefers_sterilized,
			search_radius_km = EXCLUDED.search_radius_km,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			location_text = EXCLUDED.location_text,
			monthly_budget = EXCLUDED.monthly_budget,
			motivation = EXCLUDED.motivation,
			is_complete = EXCLUDED.is_complete,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID,
		typesToStrings(p.PreferredTypes), gendersToStrings(p.PreferredGenders),
		p.MinAgeYears, p.MaxAgeYears, p.MinWeightKg, p.MaxWeightKg,
		p.ExperienceLevel, typesToStrings(p.PreviousTypes), p.HousingType, p.FamilyComposition,
		p.HasOtherPets, p.OtherPetsDetails,
		p.TimeAvailability, p.ActivityLevel, p.WorkSchedule,
		p.PrefersTrained, p.AcceptsSpecialNeeds, p.PrefersVaccinated, p.PrefersSterilized,
		p.SearchRadiusKm, p.Lat, p.Lon, p.LocationText,
		p.MonthlyBudget, p.Motivation,
		p.IsComplete, p.CompletedAt,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Delete deletes the preferences record for a user.
func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM user_preferences WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// scanPreferences scans a preferences row.
func (r *PostgresRepository) scanPreferences(row pgx.Row) (*Preferences, error) {
	var (
		p                Preferences
		preferredTypes   []string
		preferredGenders []string
		previousTypes    []string
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&preferredTypes,
		&preferredGenders,
		&p.MinAgeYears,
		&p.MaxAgeYears,
		&p.MinWeightKg,
		&p.MaxWeightKg,
		&p.ExperienceLevel,
		&previousTypes,
		&p.HousingType,
		&p.FamilyComposition,
		&p.HasOtherPets,
		&p.OtherPetsDetails,
		&p.TimeAvailability,
		&p.ActivityLevel,
		&p.WorkSchedule,
		&p.PrefersTrained,
		&p.AcceptsSpecialNeeds,
		&p.PrefersVaccinated,
		&p.PrefersSterilized,
		&p.SearchRadiusKm,
		&p.Lat,
		&p.Lon,
		&p.LocationText,
		&p.MonthlyBudget,
		&p.Motivation,
		&p.IsComplete,
		&p.CompletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.PreferredTypes = stringsToTypes(preferredTypes)
	p.PreferredGenders = stringsToGenders(preferredGenders)
	p.PreviousTypes = stringsToTypes(previousTypes)

	return &p, nil
}

func typesToStrings(types []animal.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToTypes(values []string) []animal.Type {
	out := make([]animal.Type, len(values))
	for i, v := range values {
		out[i] = animal.Type(v)
	}
	return out
}

func gendersToStrings(genders []animal.Gender) []string {
	out := make([]string, len(genders))
	for i, g := range genders {
		out[i] = string(g)
	}
	return out
}

func stringsToGenders(values []string) []animal.Gender {
	out := make([]animal.Gender, len(values))
	for i, v := range values {
		out[i] = animal.Gender(v)
	}
	return out
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
