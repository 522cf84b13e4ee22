package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"career-backend/internal/profiles"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

type Service struct {
	UserRepo    users.Repo
	ProfileRepo profiles.Repo
	Store       object.ObjectStore
}

type DeleteResult struct {
	Deleted        bool `json:"deleted"`
	DeletedObjects int  `json:"deletedObjects"`
}

func NewService(userRepo users.Repo, profileRepo profiles.Repo, store object.ObjectStore) *Service {
	return &Service{UserRepo: userRepo, ProfileRepo: profileRepo, Store: store}
}

// Delete removes the user's stored resumes, profile and user record. Objects go first so
// a storage failure leaves the account intact and the call can be repeated.
func (s *Service) Delete(ctx context.Context, userID string) (DeleteResult, error) {
	if s == nil || s.UserRepo == nil || s.ProfileRepo == nil {
		return DeleteResult{}, errors.New("account service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return DeleteResult{}, errors.New("user id is required")
	}

	var removed int
	if s.Store != nil {
		n, err := s.Store.DeleteUser(ctx, userID)
		if err != nil {
			return DeleteResult{}, fmt.Errorf("delete stored resumes: %w", err)
		}
		removed = n
	}

	if userPG, ok := s.UserRepo.(*users.PGRepo); ok && userPG != nil && userPG.DB != nil {
		if profilePG, ok := s.ProfileRepo.(*profiles.PGRepo); ok && profilePG != nil && profilePG.DB != nil {
			if err := deleteWithTx(ctx, userPG.DB, userID); err != nil {
				return DeleteResult{}, err
			}
			logDeleted(userID, removed)
			return DeleteResult{Deleted: true, DeletedObjects: removed}, nil
		}
	}

	if err := s.ProfileRepo.Delete(ctx, userID); err != nil && !errors.Is(err, profiles.ErrNotFound) {
		return DeleteResult{}, fmt.Errorf("delete profile: %w", err)
	}
	if err := s.UserRepo.Delete(ctx, userID); err != nil && !errors.Is(err, users.ErrNotFound) {
		return DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	logDeleted(userID, removed)
	return DeleteResult{Deleted: true, DeletedObjects: removed}, nil
}

func deleteWithTx(ctx context.Context, database *sql.DB, userID string) error {
	return db.WithTx(ctx, database, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func logDeleted(userID string, objects int) {
	telemetry.Info("account.deleted", map[string]any{
		"user_id":         userID,
		"deleted_objects": objects,
	})
}
