package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/logging"
	"github.com/samaj-network/app-directory/internal/models"
	"github.com/samaj-network/app-directory/internal/observability"
	"github.com/samaj-network/app-directory/internal/utils"
)

const (
	listCacheKey          = "profiles:list"
	profileCacheKeyPrefix = "profile:id:"
)

// ProfileService implements the directory flows over the profile collection:
// registration with the duplicate pre-check policy, token-gated resolution
// and mutation, and the listing/detail reads with cache-aside Redis caching.
type ProfileService struct {
	logger *logging.SafeLogger
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(logger *logging.SafeLogger) *ProfileService {
	return &ProfileService{logger: logger}
}

func (s *ProfileService) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.ProfileCollection)
}

// Register validates nothing itself (the handler owns field validation),
// applies the duplicate policy, generates the edit token and inserts one
// record. The token is generated only after the duplicate check passes, so a
// rejected registration never exposes one.
func (s *ProfileService) Register(ctx context.Context, input *models.ProfileInput, photo1URL, photo2URL string) (*models.Profile, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "register_profile")
	defer span.End()

	if err := s.CheckDuplicate(ctx, input); err != nil {
		if errors.Is(err, models.ErrDuplicateProfile) {
			observability.ProfileRegistrations.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	now := time.Now().UTC()
	profile := &models.Profile{
		Name:          input.Name,
		DOB:           input.DOB,
		TimeOfBirth:   input.TimeOfBirth,
		Place:         input.Place,
		Education:     input.Education,
		Occupation:    input.Occupation,
		Business:      input.Business,
		FatherName:    input.FatherName,
		MotherName:    input.MotherName,
		ContactNumber: input.ContactNumber,
		Photo1:        photo1URL,
		Photo2:        photo2URL,
		EditToken:     utils.GenerateEditToken(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, insertSpan := utils.TraceDatabaseInsert(ctx, config.AppConfig.ProfileCollection)
	result, err := s.collection().InsertOne(ctx, profile)
	insertSpan.End()
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert_profile", "error").Inc()
		observability.ProfileRegistrations.WithLabelValues("error").Inc()
		s.logger.Error("failed to insert profile", zap.Error(err))
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("insert_profile", "success").Inc()
	observability.ProfileRegistrations.WithLabelValues("success").Inc()

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid
	}

	s.invalidateListCache(ctx)

	s.logger.Info("profile registered",
		zap.String("id", profile.ID.Hex()),
		zap.String("contact_number", observability.MaskContactNumber(profile.ContactNumber)))

	return profile, nil
}

// CheckDuplicate applies the duplicate policy without writing anything, so
// callers can reject a registration before side effects like photo uploads.
// Register re-runs it right before the insert to narrow the race window.
func (s *ProfileService) CheckDuplicate(ctx context.Context, input *models.ProfileInput) error {
	if !config.AppConfig.DuplicateCheckEnabled {
		return nil
	}
	duplicate, err := s.findDuplicate(ctx, input)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}
	if duplicate {
		return models.ErrDuplicateProfile
	}
	return nil
}

// findDuplicate implements the best-effort duplicate heuristic: candidates
// share the contact number or the name; a candidate is a duplicate when it
// also agrees on date of birth and at least one parent name. A race between
// this check and the insert can still create duplicates (accepted).
func (s *ProfileService) findDuplicate(ctx context.Context, input *models.ProfileInput) (bool, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.ProfileCollection, "duplicate_candidates")
	defer span.End()

	filter := bson.M{"$or": []bson.M{
		{"contact_number": input.ContactNumber},
		{"name": input.Name},
	}}

	cursor, err := s.collection().Find(ctx, filter)
	if err != nil {
		return false, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var candidate models.Profile
		if err := cursor.Decode(&candidate); err != nil {
			continue
		}
		if IsDuplicateOf(&candidate, input) {
			utils.AddSpanAttribute(span, "duplicate_id", candidate.ID.Hex())
			return true, nil
		}
	}

	return false, cursor.Err()
}

// IsDuplicateOf reports whether an existing record and a submitted input
// describe the same person: same date of birth plus at least one matching
// parent name. Parent names compare case-insensitively and only when both
// sides are non-empty.
func IsDuplicateOf(existing *models.Profile, input *models.ProfileInput) bool {
	if existing.DOB == "" || existing.DOB != input.DOB {
		return false
	}
	if input.FatherName != "" && strings.EqualFold(existing.FatherName, input.FatherName) {
		return true
	}
	if input.MotherName != "" && strings.EqualFold(existing.MotherName, input.MotherName) {
		return true
	}
	return false
}

// FindByToken resolves the unique record whose edit token equals the input
// exactly. No match means denied: the caller learns nothing about whether
// any record exists.
func (s *ProfileService) FindByToken(ctx context.Context, token string) (*models.Profile, error) {
	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.ProfileCollection, "edit_token")
	defer span.End()

	var profile models.Profile
	err := s.collection().FindOne(ctx, bson.M{"edit_token": token}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			observability.ProfileEdits.WithLabelValues("denied").Inc()
			return nil, models.ErrEditTokenNotFound
		}
		observability.DatabaseOperations.WithLabelValues("find_by_token", "error").Inc()
		return nil, fmt.Errorf("failed to resolve edit token: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("find_by_token", "success").Inc()

	return &profile, nil
}

// UpdateByToken overwrites the full editable field set of the record matching
// the token. The filter matches on the edit token, never on the public id, so
// a caller can only mutate the record it holds the token for. The token
// itself and created_at are immutable.
func (s *ProfileService) UpdateByToken(ctx context.Context, token string, input *models.ProfileInput, photo1URL, photo2URL string) (*models.Profile, error) {
	ctx, span := utils.TraceDatabaseUpdate(ctx, config.AppConfig.ProfileCollection, "edit_token")
	defer span.End()

	update := bson.M{"$set": bson.M{
		"name":           input.Name,
		"dob":            input.DOB,
		"time":           input.TimeOfBirth,
		"place":          input.Place,
		"education":      input.Education,
		"occupation":     input.Occupation,
		"business":       input.Business,
		"father_name":    input.FatherName,
		"mother_name":    input.MotherName,
		"contact_number": input.ContactNumber,
		"photo_1":        photo1URL,
		"photo_2":        photo2URL,
		"updated_at":     time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Profile
	err := s.collection().FindOneAndUpdate(ctx, bson.M{"edit_token": token}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			observability.ProfileEdits.WithLabelValues("denied").Inc()
			return nil, models.ErrEditTokenNotFound
		}
		observability.DatabaseOperations.WithLabelValues("update_profile", "error").Inc()
		observability.ProfileEdits.WithLabelValues("error").Inc()
		s.logger.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("update_profile", "success").Inc()
	observability.ProfileEdits.WithLabelValues("success").Inc()

	s.invalidateProfileCaches(ctx, updated.ID.Hex())

	s.logger.Info("profile updated", zap.String("id", updated.ID.Hex()))

	return &updated, nil
}

// ListProfiles loads every record sorted by name, filters by the search term
// and derives ages with a single clock so the listing is consistent within
// one response. The unfiltered load is cached; filtering happens in memory.
func (s *ProfileService) ListProfiles(ctx context.Context, term string) (*models.ProfileListResponse, error) {
	profiles, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	data := make([]models.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		if !MatchesSearch(&profiles[i], term, now) {
			continue
		}
		age := utils.AgeFromDOB(profiles[i].DOB, now)
		data = append(data, profiles[i].ToResponse(age))
	}

	return &models.ProfileListResponse{Data: data, Total: len(data)}, nil
}

// MatchesSearch reports whether a profile matches a search term: a
// case-insensitive substring match against name, birth place, or the
// stringified derived age. An empty term matches everything.
func MatchesSearch(p *models.Profile, term string, now time.Time) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), t) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Place), t) {
		return true
	}
	age := strconv.Itoa(utils.AgeFromDOB(p.DOB, now))
	return strings.Contains(age, t)
}

// FindByID loads one record by its public identifier for the detail view.
func (s *ProfileService) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidProfileID
	}

	cacheKey := profileCacheKeyPrefix + id
	ctx, cacheSpan := utils.TraceCacheGet(ctx, cacheKey)
	cached, err := config.Redis.Get(ctx, cacheKey).Result()
	cacheSpan.End()
	if err == nil {
		var profile models.Profile
		if err := json.Unmarshal([]byte(cached), &profile); err == nil {
			observability.CacheHits.WithLabelValues("profile_detail").Inc()
			return &profile, nil
		}
	}

	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.ProfileCollection, "by_id")
	defer span.End()

	var profile models.Profile
	err = s.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProfileNotFound
		}
		observability.DatabaseOperations.WithLabelValues("find_by_id", "error").Inc()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("find_by_id", "success").Inc()

	// Cached through the public JSON view, which excludes the edit token.
	if payload, err := json.Marshal(&profile); err == nil {
		_, setSpan := utils.TraceCacheSet(ctx, cacheKey)
		if err := config.Redis.Set(ctx, cacheKey, payload, config.AppConfig.CacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache profile detail", zap.Error(err))
		}
		setSpan.End()
	}

	return &profile, nil
}

// loadAll fetches the full record set ordered by name, cache-aside.
func (s *ProfileService) loadAll(ctx context.Context) ([]models.Profile, error) {
	ctx, cacheSpan := utils.TraceCacheGet(ctx, listCacheKey)
	cached, err := config.Redis.Get(ctx, listCacheKey).Result()
	cacheSpan.End()
	if err == nil {
		var profiles []models.Profile
		if err := json.Unmarshal([]byte(cached), &profiles); err == nil {
			observability.CacheHits.WithLabelValues("profile_list").Inc()
			return profiles, nil
		}
	}

	ctx, span := utils.TraceDatabaseFind(ctx, config.AppConfig.ProfileCollection, "all_ordered")
	defer span.End()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection().Find(ctx, bson.M{}, findOptions)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("list_profiles", "error").Inc()
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		observability.DatabaseOperations.WithLabelValues("list_profiles", "error").Inc()
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("list_profiles", "success").Inc()

	if payload, err := json.Marshal(profiles); err == nil {
		_, setSpan := utils.TraceCacheSet(ctx, listCacheKey)
		if err := config.Redis.Set(ctx, listCacheKey, payload, config.AppConfig.CacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache profile list", zap.Error(err))
		}
		setSpan.End()
	}

	return profiles, nil
}

func (s *ProfileService) invalidateListCache(ctx context.Context) {
	_, span := utils.TraceCacheInvalidation(ctx, listCacheKey)
	defer span.End()

	if err := config.Redis.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate profile list cache", zap.Error(err))
	}
}

func (s *ProfileService) invalidateProfileCaches(ctx context.Context, id string) {
	cacheKey := profileCacheKeyPrefix + id
	_, span := utils.TraceCacheInvalidation(ctx, cacheKey)
	defer span.End()

	if err := config.Redis.Del(ctx, listCacheKey, cacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate profile caches",
			zap.String("id", id),
			zap.Error(err))
	}
}
