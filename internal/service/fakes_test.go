package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// table is an in-memory collection keyed by ObjectID. When unique is set,
// rows may not share its (case-insensitive) value.
type table[T any] struct {
	mu     sync.Mutex
	rows   []T
	id     func(*T) *primitive.ObjectID
	unique func(*T) string
}

func (t *table[T]) conflict(v *T, self primitive.ObjectID) bool {
	if t.unique == nil {
		return false
	}
	key := strings.ToLower(strings.TrimSpace(t.unique(v)))
	for i := range t.rows {
		if *t.id(&t.rows[i]) == self {
			continue
		}
		if strings.ToLower(strings.TrimSpace(t.unique(&t.rows[i]))) == key {
			return true
		}
	}
	return false
}

func (t *table[T]) insert(v *T) (primitive.ObjectID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conflict(v, primitive.NilObjectID) {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	id := primitive.NewObjectID()
	row := *v
	*t.id(&row) = id
	t.rows = append(t.rows, row)
	return id, nil
}

func (t *table[T]) get(id primitive.ObjectID) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			row := t.rows[i]
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (t *table[T]) update(v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(v)
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			if t.conflict(v, id) {
				return repository.ErrDuplicate
			}
			t.rows[i] = *v
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *table[T]) remove(id primitive.ObjectID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (t *table[T]) where(keep func(*T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := []T{}
	for i := range t.rows {
		if keep == nil || keep(&t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

func (t *table[T]) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// --- Users & profiles ---

type fakeUserRepo struct{ t table[domain.User] }

func newFakeUserRepo() *fakeUserRepo {
	r := &fakeUserRepo{}
	r.t.id = func(u *domain.User) *primitive.ObjectID { return &u.ID }
	r.t.unique = func(u *domain.User) string { return u.Email }
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	return r.t.insert(user)
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	rows := r.t.where(func(u *domain.User) bool { return u.Email == email })
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.t.get(id)
}

type fakeProfileRepo struct{ t table[domain.Profile] }

func newFakeProfileRepo() *fakeProfileRepo {
	r := &fakeProfileRepo{}
	r.t.id = func(p *domain.Profile) *primitive.ObjectID { return &p.ID }
	r.t.unique = func(p *domain.Profile) string { return p.UserID.Hex() }
	return r
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) (primitive.ObjectID, error) {
	return r.t.insert(p)
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	return r.t.get(id)
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	rows := r.t.where(func(p *domain.Profile) bool { return p.UserID == userID })
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	return r.t.update(p)
}

// --- Catalog ---

type fakeIngredientRepo struct{ t table[domain.Ingredient] }

func newFakeIngredientRepo() *fakeIngredientRepo {
	r := &fakeIngredientRepo{}
	r.t.id = func(v *domain.Ingredient) *primitive.ObjectID { return &v.ID }
	r.t.unique = func(v *domain.Ingredient) string { return v.Name }
	return r
}

func (r *fakeIngredientRepo) Create(_ context.Context, v *domain.Ingredient) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeIngredientRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Ingredient, error) {
	return r.t.get(id)
}

func (r *fakeIngredientRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Ingredient, error) {
	want := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.t.where(func(v *domain.Ingredient) bool { return want[v.ID] }), nil
}

func (r *fakeIngredientRepo) List(_ context.Context) ([]domain.Ingredient, error) {
	return r.t.where(nil), nil
}

func (r *fakeIngredientRepo) Update(_ context.Context, v *domain.Ingredient) error {
	return r.t.update(v)
}

func (r *fakeIngredientRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id)
}

type fakeMealRepo struct{ t table[domain.Meal] }

func newFakeMealRepo() *fakeMealRepo {
	r := &fakeMealRepo{}
	r.t.id = func(v *domain.Meal) *primitive.ObjectID { return &v.ID }
	r.t.unique = func(v *domain.Meal) string { return v.Name }
	return r
}

func (r *fakeMealRepo) Create(_ context.Context, v *domain.Meal) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeMealRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	return r.t.get(id)
}

func (r *fakeMealRepo) List(_ context.Context, mealType domain.MealType) ([]domain.Meal, error) {
	return r.t.where(func(v *domain.Meal) bool { return mealType == "" || v.Type == mealType }), nil
}

func (r *fakeMealRepo) Update(_ context.Context, v *domain.Meal) error {
	return r.t.update(v)
}

func (r *fakeMealRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id)
}

type fakeExerciseRepo struct{ t table[domain.Exercise] }

func newFakeExerciseRepo() *fakeExerciseRepo {
	r := &fakeExerciseRepo{}
	r.t.id = func(v *domain.Exercise) *primitive.ObjectID { return &v.ID }
	r.t.unique = func(v *domain.Exercise) string { return v.Name }
	return r
}

func (r *fakeExerciseRepo) Create(_ context.Context, v *domain.Exercise) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return r.t.get(id)
}

func (r *fakeExerciseRepo) List(_ context.Context, category string) ([]domain.Exercise, error) {
	return r.t.where(func(v *domain.Exercise) bool { return category == "" || v.Category == category }), nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, v *domain.Exercise) error {
	return r.t.update(v)
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id)
}

type fakePlanRepo struct{ t table[domain.NutritionPlan] }

func newFakePlanRepo() *fakePlanRepo {
	r := &fakePlanRepo{}
	r.t.id = func(v *domain.NutritionPlan) *primitive.ObjectID { return &v.ID }
	r.t.unique = func(v *domain.NutritionPlan) string { return v.Name }
	return r
}

func (r *fakePlanRepo) Create(_ context.Context, v *domain.NutritionPlan) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.NutritionPlan, error) {
	return r.t.get(id)
}

func (r *fakePlanRepo) List(_ context.Context) ([]domain.NutritionPlan, error) {
	return r.t.where(nil), nil
}

func (r *fakePlanRepo) Update(_ context.Context, v *domain.NutritionPlan) error {
	return r.t.update(v)
}

func (r *fakePlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id)
}

type fakeRoutineRepo struct{ t table[domain.Routine] }

func newFakeRoutineRepo() *fakeRoutineRepo {
	r := &fakeRoutineRepo{}
	r.t.id = func(v *domain.Routine) *primitive.ObjectID { return &v.ID }
	r.t.unique = func(v *domain.Routine) string { return v.Name }
	return r
}

func (r *fakeRoutineRepo) Create(_ context.Context, v *domain.Routine) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	return r.t.get(id)
}

func (r *fakeRoutineRepo) List(_ context.Context) ([]domain.Routine, error) {
	return r.t.where(nil), nil
}

func (r *fakeRoutineRepo) Update(_ context.Context, v *domain.Routine) error {
	return r.t.update(v)
}

func (r *fakeRoutineRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	return r.t.remove(id)
}

// --- Tracking ---

type fakeAssignmentRepo struct {
	t       table[domain.Assignment]
	updates int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	r := &fakeAssignmentRepo{}
	r.t.id = func(v *domain.Assignment) *primitive.ObjectID { return &v.ID }
	return r
}

func (r *fakeAssignmentRepo) Create(_ context.Context, v *domain.Assignment) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Assignment, error) {
	return r.t.get(id)
}

func (r *fakeAssignmentRepo) ListByProfile(_ context.Context, profileID primitive.ObjectID, f repository.AssignmentFilter) ([]domain.Assignment, error) {
	rows := r.t.where(func(a *domain.Assignment) bool {
		return a.ProfileID == profileID &&
			(f.Kind == "" || a.Kind == f.Kind) &&
			(f.Status == "" || a.Status == f.Status)
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartDate.After(rows[j].StartDate) })
	return rows, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, v *domain.Assignment) error {
	r.updates++
	return r.t.update(v)
}

type fakeMealLogRepo struct{ t table[domain.MealLog] }

func newFakeMealLogRepo() *fakeMealLogRepo {
	r := &fakeMealLogRepo{}
	r.t.id = func(v *domain.MealLog) *primitive.ObjectID { return &v.ID }
	return r
}

func (r *fakeMealLogRepo) Create(_ context.Context, v *domain.MealLog) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeMealLogRepo) ListByProfile(_ context.Context, profileID primitive.ObjectID, dr domain.DateRange) ([]domain.MealLog, error) {
	return r.t.where(func(l *domain.MealLog) bool {
		return l.ProfileID == profileID && dr.Contains(l.ConsumedAt)
	}), nil
}

type fakeExerciseLogRepo struct{ t table[domain.ExerciseLog] }

func newFakeExerciseLogRepo() *fakeExerciseLogRepo {
	r := &fakeExerciseLogRepo{}
	r.t.id = func(v *domain.ExerciseLog) *primitive.ObjectID { return &v.ID }
	return r
}

func (r *fakeExerciseLogRepo) Create(_ context.Context, v *domain.ExerciseLog) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeExerciseLogRepo) ListByProfile(_ context.Context, profileID primitive.ObjectID, dr domain.DateRange) ([]domain.ExerciseLog, error) {
	return r.t.where(func(l *domain.ExerciseLog) bool {
		return l.ProfileID == profileID && dr.Contains(l.PerformedAt)
	}), nil
}

type fakeProgressRepo struct{ t table[domain.ProgressEntry] }

func newFakeProgressRepo() *fakeProgressRepo {
	r := &fakeProgressRepo{}
	r.t.id = func(v *domain.ProgressEntry) *primitive.ObjectID { return &v.ID }
	return r
}

func (r *fakeProgressRepo) Create(_ context.Context, v *domain.ProgressEntry) (primitive.ObjectID, error) {
	return r.t.insert(v)
}

func (r *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ProgressEntry, error) {
	return r.t.get(id)
}

func (r *fakeProgressRepo) ListByProfile(_ context.Context, profileID primitive.ObjectID) ([]domain.ProgressEntry, error) {
	rows := r.t.where(func(p *domain.ProgressEntry) bool { return p.ProfileID == profileID })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RecordedAt.After(rows[j].RecordedAt) })
	return rows, nil
}

func (r *fakeProgressRepo) Update(_ context.Context, v *domain.ProgressEntry) error {
	return r.t.update(v)
}

// --- Storage ---

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
	failURL bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]bool)}
}

func (s *fakeStorage) put(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = true
}

func (s *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	if s.failURL {
		return "", errors.New("presign failed")
	}
	return "https://storage.test/" + objectKey + "?upload&type=" + contentType, nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	if s.failURL {
		return "", errors.New("presign failed")
	}
	return "https://storage.test/" + objectKey + "?download", nil
}

func (s *fakeStorage) ObjectExists(_ context.Context, objectKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[objectKey], nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

// fixture wires every service over fresh fakes with a fixed clock.
type fixture struct {
	users        *fakeUserRepo
	profiles     *fakeProfileRepo
	ingredients  *fakeIngredientRepo
	meals        *fakeMealRepo
	exercises    *fakeExerciseRepo
	plans        *fakePlanRepo
	routines     *fakeRoutineRepo
	assignments  *fakeAssignmentRepo
	mealLogs     *fakeMealLogRepo
	exerciseLogs *fakeExerciseLogRepo
	progress     *fakeProgressRepo
	storage      *fakeStorage
	now          time.Time
}

func newFixture() *fixture {
	return &fixture{
		users:        newFakeUserRepo(),
		profiles:     newFakeProfileRepo(),
		ingredients:  newFakeIngredientRepo(),
		meals:        newFakeMealRepo(),
		exercises:    newFakeExerciseRepo(),
		plans:        newFakePlanRepo(),
		routines:     newFakeRoutineRepo(),
		assignments:  newFakeAssignmentRepo(),
		mealLogs:     newFakeMealLogRepo(),
		exerciseLogs: newFakeExerciseLogRepo(),
		progress:     newFakeProgressRepo(),
		storage:      newFakeStorage(),
		now:          time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
	}
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) assignmentService() *assignmentService {
	s := NewAssignmentService(f.profiles, f.assignments, f.plans, f.routines).(*assignmentService)
	s.now = f.clock
	return s
}

func (f *fixture) trackingService() *trackingService {
	s := NewTrackingService(f.profiles, f.meals, f.exercises, f.assignments, f.mealLogs, f.exerciseLogs).(*trackingService)
	s.now = f.clock
	return s
}

func (f *fixture) progressService() *progressService {
	s := NewProgressService(f.profiles, f.progress, f.storage, 0).(*progressService)
	s.now = f.clock
	return s
}

// user inserts a user with a profile and returns the user id.
func (f *fixture) user(dailyCalories float64) (primitive.ObjectID, *domain.Profile) {
	uid, err := f.users.Create(context.Background(), &domain.User{Name: "Ana", Email: primitive.NewObjectID().Hex() + "@example.com", Role: domain.RoleUser})
	if err != nil {
		panic(err)
	}
	p := &domain.Profile{UserID: uid, DailyCalories: dailyCalories}
	pid, err := f.profiles.Create(context.Background(), p)
	if err != nil {
		panic(err)
	}
	p.ID = pid
	return uid, p
}

func (f *fixture) plan(name string, days int) primitive.ObjectID {
	id, err := f.plans.Create(context.Background(), &domain.NutritionPlan{Name: name, DurationDays: days})
	if err != nil {
		panic(err)
	}
	return id
}

func (f *fixture) routine(name string, weeks int) primitive.ObjectID {
	id, err := f.routines.Create(context.Background(), &domain.Routine{Name: name, DurationWeeks: weeks})
	if err != nil {
		panic(err)
	}
	return id
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
