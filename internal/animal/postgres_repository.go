package animal

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL animal repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const animalColumns = `
	id, name, type, breed, age_years, gender, weight_kg,
	vaccinated, sterilized, health_notes, photo_urls,
	status, available_for_adoption, shelter_id,
	created_at, updated_at
`

// Get retrieves an animal by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals WHERE id = $1`

	var a Animal
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.Breed,
		&a.AgeYears,
		&a.Gender,
		&a.WeightKg,
		&a.Vaccinated,
		&a.Sterilized,
		&a.HealthNotes,
		&a.PhotoURLs,
		&a.Status,
		&a.AvailableForAdoption,
		&a.ShelterID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}

	return &a, nil
}

// List retrieves animals matching the given options, oldest listing first.
func (r *PostgresRepository) List(ctx context.Context, opts ListOptions) ([]*Animal, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 200
	}

	query := `SELECT ` + animalColumns + ` FROM animals WHERE 1=1`
	args := []interface{}{}

	if opts.AdoptableOnly {
		query += ` AND status = 'AVAILABLE' AND available_for_adoption = TRUE`
	}
	if opts.Type != "" {
		args = append(args, opts.Type)
		query += ` AND type = $1`
	}

	args = append(args, limit)
	if len(args) == 1 {
		query += ` ORDER BY created_at ASC LIMIT $1`
	} else {
		query += ` ORDER BY created_at ASC LIMIT $2`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var animals []*Animal
	for rows.Next() {
		var a Animal
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Type,
			&a.Breed,
			&a.AgeYears,
			&a.Gender,
			&a.WeightKg,
			&a.Vaccinated,
			&a.Sterilized,
			&a.HealthNotes,
			&a.PhotoURLs,
			&a.Status,
			&a.AvailableForAdoption,
			&a.ShelterID,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		animals = append(animals, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return animals, nil
}

// Create creates a new animal.
func (r *PostgresRepository) Create(ctx context.Context, a *Animal) error {
	query := `
		INSERT INTO animals (` + animalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Type, a.Breed, a.AgeYears, a.Gender, a.WeightKg,
		a.Vaccinated, a.Sterilized, a.HealthNotes, a.PhotoURLs,
		a.Status, a.AvailableForAdoption, a.ShelterID,
		a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// Update updates an existing animal.
func (r *PostgresRepository) Update(ctx context.Context, a *Animal) error {
	query := `
		UPDATE animals SET
			name = $2, type = $3, breed = $4, age_years = $5, gender = $6,
			weight_kg = $7, vaccinated = $8, sterilized = $9, health_notes = $10,
			photo_urls = $11, status = $12, available_for_adoption = $13,
			shelter_id = $14, updated_at = $15
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Type, a.Breed, a.AgeYears, a.Gender,
		a.WeightKg, a.Vaccinated, a.Sterilized, a.HealthNotes,
		a.PhotoURLs, a.Status, a.AvailableForAdoption,
		a.ShelterID, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAnimalNotFound
	}
	return nil
}

// Delete deletes an animal by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM animals WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)

// PostgresProfileRepository is a PostgreSQL implementation of ProfileRepository.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

const profileColumns = `
	id, animal_id,
	energy_level, social_level, good_with_kids, good_with_other_pets, good_with_strangers,
	training_level, house_trained, leash_trained, known_commands,
	care_level, exercise_needs, grooming_needs, special_diet,
	chronic_conditions, medications, allergies,
	destructive_behavior, separation_anxiety, noise_sensitivity, escape_tendency,
	apartment_suitable, beginner_friendly, family_friendly,
	created_at, updated_at
`

// GetByAnimal retrieves the profile for an animal.
func (r *PostgresProfileRepository) GetByAnimal(ctx context.Context, animalID string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM animal_profiles WHERE animal_id = $1`

	var (
		p                 Profile
		goodWithKids      *bool
		goodWithOtherPets *bool
		goodWithStrangers *bool
		leashTrained      *bool
	)

	err := r.pool.QueryRow(ctx, query, animalID).Scan(
		&p.ID,
		&p.AnimalID,
		&p.EnergyLevel,
		&p.SocialLevel,
		&goodWithKids,
		&goodWithOtherPets,
		&goodWithStrangers,
		&p.TrainingLevel,
		&p.HouseTrained,
		&leashTrained,
		&p.KnownCommands,
		&p.CareLevel,
		&p.ExerciseNeeds,
		&p.GroomingNeeds,
		&p.SpecialDiet,
		&p.ChronicConditions,
		&p.Medications,
		&p.Allergies,
		&p.DestructiveBehavior,
		&p.SeparationAnxiety,
		&p.NoiseSensitivity,
		&p.EscapeTendency,
		&p.ApartmentSuitable,
		&p.BeginnerFriendly,
		&p.FamilyFriendly,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p.GoodWithKids = triStateFromNullable(goodWithKids)
	p.GoodWithOtherPets = triStateFromNullable(goodWithOtherPets)
	p.GoodWithStrangers = triStateFromNullable(goodWithStrangers)
	p.LeashTrained = triStateFromNullable(leashTrained)

	return &p, nil
}

// Upsert creates or replaces the profile for an animal.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO animal_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		ON CONFLICT (animal_id) DO UPDATE SET
			energy_level = EXCLUDED.energy_level,
			social_level = EXCLUDED.social_level,
			good_with_kids = EXCLUDED.good_with_kids,
			good_with_other_pets = EXCLUDED.good_with_other_pets,
			good_with_strangers = EXCLUDED.good_with_strangers,
			training_level = EXCLUDED.training_level,
			house_trained = EXCLUDED.house_trained,
			leash_trained = EXCLUDED.leash_trained,
			known_commands = EXCLUDED.known_commands,
			care_level = EXCLUDED.care_level,
			exercise_needs = EXCLUDED.exercise_needs,
			grooming_needs = EXCLUDED.grooming_needs,
			special_diet = EXCLUDED.special_diet,
			chronic_conditions = EXCLUDED.chronic_conditions,
			medications = EXCLUDED.medications,
			allergies = EXCLUDED.allergies,
			destructive_behavior = EXCLUDED.destructive_behavior,
			separation_anxiety = EXCLUDED.separation_anxiety,
			noise_sensitivity = EXCLUDED.noise_sensitivity,
			escape_tendency = EXCLUDED.escape_tendency,
			apartment_suitable = EXCLUDED.apartment_suitable,
			beginner_friendly = EXCLUDED.beginner_friendly,
			family_friendly = EXCLUDED.family_friendly,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.AnimalID,
		p.EnergyLevel, p.SocialLevel,
		nullableFromTriState(p.GoodWithKids),
		nullableFromTriState(p.GoodWithOtherPets),
		nullableFromTriState(p.GoodWithStrangers),
		p.TrainingLevel, p.HouseTrained,
		nullableFromTriState(p.LeashTrained),
		p.KnownCommands,
		p.CareLevel, p.ExerciseNeeds, p.GroomingNeeds, p.SpecialDiet,
		p.ChronicConditions, p.Medications, p.Allergies,
		p.DestructiveBehavior, p.SeparationAnxiety, p.NoiseSensitivity, p.EscapeTendency,
		p.ApartmentSuitable, p.BeginnerFriendly, p.FamilyFriendly,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Delete deletes the profile for an animal.
func (r *PostgresProfileRepository) Delete(ctx context.Context, animalID string) error {
	query := `DELETE FROM animal_profiles WHERE animal_id = $1`
	_, err := r.pool.Exec(ctx, query, animalID)
	return err
}

// triStateFromNullable maps a nullable boolean column to a TriState.
func triStateFromNullable(v *bool) TriState {
	if v == nil {
		return TriUnknown
	}
	return TriStateOf(*v)
}

// nullableFromTriState maps a TriState to a nullable boolean column.
func nullableFromTriState(t TriState) *bool {
	switch t {
	case TriTrue:
		v := true
		return &v
	case TriFalse:
		v := false
		return &v
	default:
		return nil
	}
}

// Ensure PostgresProfileRepository implements ProfileRepository interface.
var _ ProfileRepository = (*PostgresProfileRepository)(nil)
