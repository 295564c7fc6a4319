// Package user orchestrates the editorial account lifecycle: creation with
// login verification, role management, password recovery and the
// soft-delete/restore pair.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/infra/notifier"
	"magazine-backoffice/internal/pkg/keymutex"
	"magazine-backoffice/internal/repository"
	"magazine-backoffice/internal/roles"
)

// AccessChecker answers whether a user may perform an access-controlled
// action.
type AccessChecker interface {
	Check(ctx context.Context, userID int64, item roles.AccessItem) error
}

// CodeSender is the verification-code capability consumed by the service.
type CodeSender interface {
	SendCode(ctx context.Context, userID int64, purpose entity.VerifyPurpose) error
	CheckCode(ctx context.Context, code string, userID int64, purpose entity.VerifyPurpose) (bool, error)
}

// LoginDetails is the public view of how an account signs in.
type LoginDetails struct {
	Login     string
	LoginType string
}

// Service implements the account lifecycle. Every read-modify-save sequence
// is serialized per user through the key mutex so concurrent callers cannot
// lose updates.
type Service struct {
	Users    *repository.UserRepository
	Contacts *repository.ContactRepository
	Secrets  *repository.TwoFactorRepository
	Codes    *repository.VerificationRepository
	Access   AccessChecker
	Verify   CodeSender
	Notifier notifier.Notifier
	Logger   *slog.Logger

	locks *keymutex.KeyMutex
}

// NewService wires the account service.
func NewService(
	users *repository.UserRepository,
	contacts *repository.ContactRepository,
	secrets *repository.TwoFactorRepository,
	codes *repository.VerificationRepository,
	access AccessChecker,
	verify CodeSender,
	n notifier.Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		Users:    users,
		Contacts: contacts,
		Secrets:  secrets,
		Codes:    codes,
		Access:   access,
		Verify:   verify,
		Notifier: n,
		Logger:   logger,
		locks:    keymutex.New(),
	}
}

func userKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }

// Create registers an account, hashes the password inside the entity and
// triggers a login-confirmation code. Empty login or password fails with a
// Validation error; an already-taken login fails with Conflict.
func (s *Service) Create(ctx context.Context, login, password string) (*entity.User, error) {
	if login == "" {
		return nil, entity.Validationf("login must not be empty")
	}
	if password == "" {
		return nil, entity.Validationf("password must not be empty")
	}
	if _, err := s.Users.GetByLogin(ctx, login); err == nil {
		return nil, entity.Conflictf("login %q is already taken", login)
	} else if entity.KindOf(err) != entity.KindNotFound {
		return nil, fmt.Errorf("check login availability: %w", err)
	}

	user, err := s.Users.CreateWithLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.Verify.SendCode(ctx, user.ID(), entity.PurposeLogin); err != nil {
		return nil, fmt.Errorf("send login confirmation: %w", err)
	}
	s.Logger.InfoContext(ctx, "user created", slog.Int64("user_id", user.ID()), slog.String("login", login))
	return user, nil
}

// ChangeRole assigns a new role to the user. Assigning the role the user
// already holds is a no-op. Otherwise the initiator must hold the role-change
// capability and must not be the user themselves.
func (s *Service) ChangeRole(ctx context.Context, userID, roleID, initiator int64) (*entity.User, error) {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role() == roleID {
		return user, nil
	}
	if err := s.Access.Check(ctx, initiator, roles.ChangeRole); err != nil {
		return nil, err
	}
	if initiator == userID {
		return nil, entity.Forbiddenf("users cannot change their own role")
	}
	user.SetRole(roleID)
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.Logger.InfoContext(ctx, "role changed",
		slog.Int64("user_id", userID),
		slog.Int64("role", roleID),
		slog.Int64("initiator", initiator),
	)
	return user, nil
}

// UpgradeTrainee promotes a trainee to journalist and sends a congratulation.
// Users who are not trainees are left untouched.
func (s *Service) UpgradeTrainee(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	trainee, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return err
	}
	if !trainee.IsTrainee() {
		return nil
	}
	trainee.SetRole(entity.RoleJournalist)
	if err := s.Users.Save(ctx, trainee); err != nil {
		return err
	}
	if err := s.Notifier.Send(ctx, userID,
		"Congratulations on your promotion",
		"Your role at the magazine has been upgraded to Journalist",
	); err != nil {
		return fmt.Errorf("send promotion notice: %w", err)
	}
	return nil
}

// RemindAccess sends a password-recovery code to the account with the given
// login.
func (s *Service) RemindAccess(ctx context.Context, login string) error {
	user, err := s.Users.GetByLogin(ctx, login)
	if err != nil {
		return err
	}
	return s.Verify.SendCode(ctx, user.ID(), entity.PurposeRemind)
}

// RemindPassword sets a new password once the recovery code checks out.
func (s *Service) RemindPassword(ctx context.Context, userID int64, code, password string) error {
	ok, err := s.Verify.CheckCode(ctx, code, userID, entity.PurposeRemind)
	if err != nil {
		return err
	}
	if !ok {
		return entity.Forbiddenf("verification code does not match")
	}
	return s.ChangePassword(ctx, userID, password)
}

// ChangePassword replaces the user's password. Callers that act on behalf of
// the user without a session must go through RemindPassword instead.
func (s *Service) ChangePassword(ctx context.Context, userID int64, password string) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.Users.Save(ctx, user)
}

// ChangeLogin replaces the login. The verified flag resets inside the entity,
// so a confirmation code is sent for the new login.
func (s *Service) ChangeLogin(ctx context.Context, userID int64, login string) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.SetLogin(login); err != nil {
		return err
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return err
	}
	return s.Verify.SendCode(ctx, userID, entity.PurposeLogin)
}

// VerifyLogin confirms the account's login when the code matches. It reports
// whether the confirmation happened.
func (s *Service) VerifyLogin(ctx context.Context, userID int64, code string) (bool, error) {
	ok, err := s.Verify.CheckCode(ctx, code, userID, entity.PurposeLogin)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return false, err
	}
	user.ConfirmLogin()
	if err := s.Users.Save(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// LoginDetails returns the account's login and its delivery channel.
func (s *Service) LoginDetails(ctx context.Context, userID int64) (LoginDetails, error) {
	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return LoginDetails{}, err
	}
	return LoginDetails{Login: user.Login(), LoginType: string(entity.ContactMail)}, nil
}

// Remove soft-deletes the account.
func (s *Service) Remove(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Remove(); err != nil {
		return err
	}
	return s.Users.Save(ctx, user)
}

// Recover restores a soft-deleted account and re-triggers login confirmation.
func (s *Service) Recover(ctx context.Context, userID int64) error {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Recover(); err != nil {
		return err
	}
	if err := s.Users.Save(ctx, user); err != nil {
		return err
	}
	return s.Verify.SendCode(ctx, userID, entity.PurposeLogin)
}

// Delete hard-deletes the account together with its contacts, second-factor
// secrets and pending verification codes. Dependents go first and the user
// record last, so a failed run leaves a re-runnable partial state rather than
// an orphaned dependent.
func (s *Service) Delete(ctx context.Context, userID int64) (bool, error) {
	unlock := s.locks.Lock(userKey(userID))
	defer unlock()

	user, err := s.Users.GetOne(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, err := s.Contacts.DeleteByUser(ctx, userID); err != nil {
		return false, fmt.Errorf("delete user %d contacts: %w", userID, err)
	}
	if _, err := s.Secrets.DeleteByUser(ctx, userID); err != nil {
		return false, fmt.Errorf("delete user %d secrets: %w", userID, err)
	}
	if _, err := s.Codes.DeleteByUser(ctx, userID); err != nil {
		return false, fmt.Errorf("delete user %d codes: %w", userID, err)
	}
	ok, err := s.Users.Delete(ctx, user.ID())
	if err != nil {
		return false, err
	}
	s.Logger.InfoContext(ctx, "user deleted", slog.Int64("user_id", userID))
	return ok, nil
}
