package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/logging"
	"github.com/samaj-network/app-directory/internal/models"
	"github.com/samaj-network/app-directory/internal/redisclient"
)

func TestMatchesSearch(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	profile := &models.Profile{
		Name:  "Asha Rao",
		DOB:   "1995-03-10", // derived age 29 at `now`
		Place: "Pune",
	}

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"empty term matches all", "", true},
		{"name substring", "sha", true},
		{"name case-insensitive", "ASHA", true},
		{"place substring", "pune", true},
		{"place case-insensitive", "PUN", true},
		{"derived age as string", "29", true},
		{"wrong age", "1998", false},
		{"no field matches", "mumbai", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSearch(profile, tt.term, now))
		})
	}
}

func TestMatchesSearch_SentinelAge(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	profile := &models.Profile{Name: "Unknown", DOB: "", Place: "Delhi"}

	// Missing dob derives the sentinel 0, which participates in search
	assert.True(t, MatchesSearch(profile, "0", now))
	assert.False(t, MatchesSearch(profile, "29", now))
}

func TestIsDuplicateOf(t *testing.T) {
	existing := &models.Profile{
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		FatherName:    "Ramesh Rao",
		MotherName:    "Sunita Rao",
		ContactNumber: "9999999999",
	}

	tests := []struct {
		name  string
		input *models.ProfileInput
		want  bool
	}{
		{
			name: "same dob and father",
			input: &models.ProfileInput{
				DOB:        "1995-03-10",
				FatherName: "Ramesh Rao",
			},
			want: true,
		},
		{
			name: "same dob and mother, case-insensitive",
			input: &models.ProfileInput{
				DOB:        "1995-03-10",
				MotherName: "sunita rao",
			},
			want: true,
		},
		{
			name: "same dob, different parents",
			input: &models.ProfileInput{
				DOB:        "1995-03-10",
				FatherName: "Someone Else",
				MotherName: "Another Name",
			},
			want: false,
		},
		{
			name: "same dob, no parent names submitted",
			input: &models.ProfileInput{
				DOB: "1995-03-10",
			},
			want: false,
		},
		{
			name: "different dob, matching parents",
			input: &models.ProfileInput{
				DOB:        "1996-01-01",
				FatherName: "Ramesh Rao",
				MotherName: "Sunita Rao",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateOf(existing, tt.input))
		})
	}
}

// setupProfileServiceTest initializes MongoDB and Redis for integration tests
func setupProfileServiceTest(t *testing.T) (*ProfileService, func()) {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		t.Skip("Skipping profile service tests: MONGODB_URI not set")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	logging.InitLogger()

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}
	config.AppConfig.ProfileCollection = "test_profiles"
	config.AppConfig.CacheTTL = 5 * time.Minute
	config.AppConfig.DuplicateCheckEnabled = true

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err, "failed to connect to MongoDB")
	require.NoError(t, client.Ping(ctx, nil), "failed to ping MongoDB")

	database := client.Database("directory_test")
	config.MongoDB = database

	singleClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	require.NoError(t, singleClient.Ping(ctx).Err(), "failed to ping Redis")
	config.Redis = redisclient.NewClient(singleClient)

	service := NewProfileService(logging.Logger.Named("test"))

	cleanup := func() {
		database.Collection(config.AppConfig.ProfileCollection).Drop(ctx)
		singleClient.FlushDB(ctx)
		client.Disconnect(ctx)
		singleClient.Close()
	}
	return service, cleanup
}

func TestProfileService_RegisterAndResolve(t *testing.T) {
	service, cleanup := setupProfileServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	input := &models.ProfileInput{
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		Place:         "Pune",
		Occupation:    "Teacher",
		ContactNumber: "9999999999",
	}

	profile, err := service.Register(ctx, input, "", "")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Len(t, profile.EditToken, 32)
	assert.NotEqual(t, profile.ID.Hex(), profile.EditToken,
		"public identifier and edit token must be distinct")

	// The exact token resolves to the record
	resolved, err := service.FindByToken(ctx, profile.EditToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, resolved.ID)
	assert.Equal(t, "Asha Rao", resolved.Name)

	// Any other string is denied without disclosure
	_, err = service.FindByToken(ctx, "00000000000000000000000000000000")
	assert.ErrorIs(t, err, models.ErrEditTokenNotFound)

	// Token matching is exact and case-sensitive
	_, err = service.FindByToken(ctx, "  "+profile.EditToken)
	assert.ErrorIs(t, err, models.ErrEditTokenNotFound)
}

func TestProfileService_DuplicatePolicy(t *testing.T) {
	service, cleanup := setupProfileServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	first := &models.ProfileInput{
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		Place:         "Pune",
		Occupation:    "Teacher",
		FatherName:    "Ramesh Rao",
		ContactNumber: "9999999999",
	}

	_, err := service.Register(ctx, first, "", "")
	require.NoError(t, err)

	// Same contact number, same dob, same father: the standalone pre-check
	// rejects before any side effect, and the insert path agrees
	dup := *first
	assert.ErrorIs(t, service.CheckDuplicate(ctx, &dup), models.ErrDuplicateProfile)
	_, err = service.Register(ctx, &dup, "", "")
	assert.ErrorIs(t, err, models.ErrDuplicateProfile)

	// Same name but different dob: allowed
	other := *first
	other.DOB = "1990-01-01"
	other.ContactNumber = "8888888888"
	assert.NoError(t, service.CheckDuplicate(ctx, &other))
	_, err = service.Register(ctx, &other, "", "")
	assert.NoError(t, err)
}

func TestProfileService_UpdateByToken(t *testing.T) {
	service, cleanup := setupProfileServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	input := &models.ProfileInput{
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		Place:         "Pune",
		Occupation:    "Teacher",
		ContactNumber: "9999999999",
	}

	profile, err := service.Register(ctx, input, "http://storage.local/user-photos/photo1_1.jpg", "")
	require.NoError(t, err)

	// Full-overwrite update with photo slot carried over by the caller
	updatedInput := *input
	updatedInput.Occupation = "Principal"
	updatedInput.Education = "M.Ed"

	updated, err := service.UpdateByToken(ctx, profile.EditToken, &updatedInput, profile.Photo1, "")
	require.NoError(t, err)
	assert.Equal(t, "Principal", updated.Occupation)
	assert.Equal(t, "M.Ed", updated.Education)
	assert.Equal(t, profile.Photo1, updated.Photo1, "untouched photo slot carries over")
	assert.Equal(t, profile.EditToken, updated.EditToken, "edit token is immutable")

	// The detail view reflects the mutation
	detail, err := service.FindByID(ctx, profile.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Principal", detail.Occupation)

	// Passing an empty slot value empties the stored slot
	cleared, err := service.UpdateByToken(ctx, profile.EditToken, &updatedInput, "", "")
	require.NoError(t, err)
	assert.Equal(t, "", cleared.Photo1, "cleared photo slot is stored empty")

	// A fabricated token mutates nothing
	_, err = service.UpdateByToken(ctx, "ffffffffffffffffffffffffffffffff", &updatedInput, "", "")
	assert.ErrorIs(t, err, models.ErrEditTokenNotFound)
}

func TestProfileService_ListOrderAndSearch(t *testing.T) {
	service, cleanup := setupProfileServiceTest(t)
	defer cleanup()

	ctx := context.Background()
	for _, p := range []models.ProfileInput{
		{Name: "Zara Shah", DOB: "1990-01-01", Place: "Mumbai", Occupation: "Doctor", ContactNumber: "7777777771"},
		{Name: "Asha Rao", DOB: "1995-03-10", Place: "Pune", Occupation: "Teacher", ContactNumber: "7777777772"},
		{Name: "Meera Iyer", DOB: "1988-07-20", Place: "Chennai", Occupation: "Engineer", ContactNumber: "7777777773"},
	} {
		input := p
		_, err := service.Register(ctx, &input, "", "")
		require.NoError(t, err)
	}

	// Empty term returns every record in name order
	all, err := service.ListProfiles(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, "Asha Rao", all.Data[0].Name)
	assert.Equal(t, "Meera Iyer", all.Data[1].Name)
	assert.Equal(t, "Zara Shah", all.Data[2].Name)

	// Place search is case-insensitive
	pune, err := service.ListProfiles(ctx, "pune")
	require.NoError(t, err)
	require.Equal(t, 1, pune.Total)
	assert.Equal(t, "Asha Rao", pune.Data[0].Name)

	// A term matching no field filters everything out
	none, err := service.ListProfiles(ctx, "1900")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
}
