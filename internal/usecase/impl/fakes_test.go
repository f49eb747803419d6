package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"taskboard/internal/domain/entity"
	"taskboard/internal/domain/repository"
	"taskboard/internal/domain/service"

	"github.com/google/uuid"
)

// fakeUserRepository is an in-memory UserRepository for unit tests.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User

	failNext         error
	failNextFindByID error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepository) takeFailure() error {
	err := f.failNext
	f.failNext = nil

	return err
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	if err := f.failNextFindByID; err != nil {
		f.failNextFindByID = nil

		return nil, err
	}

	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (f *fakeUserRepository) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	for _, user := range f.users {
		if user.Username == identifier || user.Email == identifier {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return false, err
	}

	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return err
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone

	return nil
}

func (f *fakeUserRepository) UpdateRefreshTokenHash(_ context.Context, userID uuid.UUID, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return err
	}

	user, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshTokenHash = tokenHash
	user.UpdatedAt = time.Now()

	return nil
}

// fakeTaskRepository is an in-memory TaskRepository for unit tests.
type fakeTaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entity.Task

	failNext error
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{tasks: make(map[uuid.UUID]*entity.Task)}
}

func (f *fakeTaskRepository) takeFailure() error {
	err := f.failNext
	f.failNext = nil

	return err
}

func (f *fakeTaskRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	clone := *task

	return &clone, nil
}

func (f *fakeTaskRepository) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entity.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	var out []*entity.Task
	for _, task := range f.tasks {
		if task.OwnerID == ownerID {
			clone := *task
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (f *fakeTaskRepository) Create(_ context.Context, task *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return err
	}

	task.ID = uuid.New()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	f.tasks[task.ID] = &clone

	return nil
}

func (f *fakeTaskRepository) Update(_ context.Context, task *entity.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return err
	}

	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	clone := *task
	f.tasks[task.ID] = &clone

	return nil
}

func (f *fakeTaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.takeFailure(); err != nil {
		return err
	}

	if _, ok := f.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, id)

	return nil
}

// fakeRepositoryFactory hands back the shared fakes so "transactional" code
// paths observe the same state as direct repository calls.
type fakeRepositoryFactory struct {
	userRepo *fakeUserRepository
	taskRepo *fakeTaskRepository
}

func (f *fakeRepositoryFactory) UserRepo() repository.UserRepository { return f.userRepo }
func (f *fakeRepositoryFactory) TaskRepo() repository.TaskRepository { return f.taskRepo }

// fakeTxManager runs the callback without real transaction semantics.
type fakeTxManager struct {
	factory *fakeRepositoryFactory
}

func newFakeTxManager(userRepo *fakeUserRepository, taskRepo *fakeTaskRepository) *fakeTxManager {
	return &fakeTxManager{factory: &fakeRepositoryFactory{userRepo: userRepo, taskRepo: taskRepo}}
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// fakeHasher uses a reversible marker instead of bcrypt to keep tests fast.
type fakeHasher struct {
	failNext error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil

		return "", err
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues predictable token strings and tracks validity.
type fakeTokenService struct {
	mu      sync.Mutex
	counter int
	valid   map[string]*service.Claims

	generateErr error
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{valid: make(map[string]*service.Claims)}
}

func (f *fakeTokenService) GenerateTokens(userID uuid.UUID, username, email, fullName string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generateErr != nil {
		return "", "", f.generateErr
	}

	f.counter++
	access := "access-" + userID.String() + "-" + strconv.Itoa(f.counter)
	refresh := "refresh-" + userID.String() + "-" + strconv.Itoa(f.counter)
	claims := &service.Claims{UserID: userID, Username: username, Email: email, FullName: fullName}
	f.valid["a:"+access] = claims
	f.valid["r:"+refresh] = claims

	return access, refresh, nil
}

func (f *fakeTokenService) ValidateAccessToken(token string) (*service.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if claims, ok := f.valid["a:"+token]; ok {
		return claims, nil
	}

	return nil, errInvalidFakeToken
}

func (f *fakeTokenService) ValidateRefreshToken(token string) (*service.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if claims, ok := f.valid["r:"+token]; ok {
		return claims, nil
	}

	return nil, errInvalidFakeToken
}

func (f *fakeTokenService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration { return 7 * 24 * time.Hour }
func (f *fakeTokenService) GetAccessTokenDuration() time.Duration  { return 15 * time.Minute }

var errInvalidFakeToken = errFake("invalid token")

type errFake string

func (e errFake) Error() string { return string(e) }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
