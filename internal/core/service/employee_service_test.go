package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/workforcehq/employee-api/internal/core/domain"
	"github.com/workforcehq/employee-api/internal/core/ports"
)

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
	nextID    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.nextID++
	created := cloneEmployee(e)
	created.ID = fmt.Sprintf("emp_%d", r.nextID)
	r.employees[created.ID] = cloneEmployee(created)
	return created, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) List(_ context.Context, filter ports.EmployeeFilter) ([]*domain.Employee, error) {
	out := make([]*domain.Employee, 0)
	for _, e := range r.employees {
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Position != "" && e.Position != filter.Position {
			continue
		}
		out = append(out, cloneEmployee(e))
	}
	// Same contract as the real store: newest-created first.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.employees[e.ID]; !ok {
		return domain.ErrEmployeeNotFound
	}
	r.employees[e.ID] = cloneEmployee(e)
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

type stubFileStore struct {
	saved     []string
	removed   []string
	removeErr error
}

func (s *stubFileStore) Save(_ context.Context, originalName string, content io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, content)
	path := "uploads/stored-" + originalName
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubFileStore) Remove(_ context.Context, path string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, path)
	return nil
}

func validCreateInput() ports.CreateEmployeeInput {
	return ports.CreateEmployeeInput{
		EmployeeID:    "E-1001",
		FirstName:     "Grace",
		LastName:      "Hopper",
		Email:         "grace@example.com",
		Position:      "Engineer",
		Salary:        90000,
		DateOfJoining: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Department:    "Engineering",
	}
}

func newTestEmployeeService(repo ports.EmployeeRepository, files ports.FileStore) *EmployeeService {
	return NewEmployeeService(repo, files, zerolog.Nop())
}

func TestEmployeeService_Create_Success(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})

	emp, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if emp.ID == "" {
		t.Fatalf("expected assigned record id")
	}
	if emp.ProfilePicture != "" {
		t.Fatalf("expected no picture, got %q", emp.ProfilePicture)
	}
	if emp.CreatedAt.IsZero() || emp.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
}

func TestEmployeeService_Create_MissingField(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})

	mutations := map[string]func(*ports.CreateEmployeeInput){
		"employeeId":      func(in *ports.CreateEmployeeInput) { in.EmployeeID = "" },
		"firstName":       func(in *ports.CreateEmployeeInput) { in.FirstName = "" },
		"lastName":        func(in *ports.CreateEmployeeInput) { in.LastName = "" },
		"email":           func(in *ports.CreateEmployeeInput) { in.Email = "" },
		"position":        func(in *ports.CreateEmployeeInput) { in.Position = "" },
		"department":      func(in *ports.CreateEmployeeInput) { in.Department = "" },
		"date_of_joining": func(in *ports.CreateEmployeeInput) { in.DateOfJoining = time.Time{} },
	}

	for field, mutate := range mutations {
		input := validCreateInput()
		mutate(&input)
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("missing %s: expected ErrInvalidInput, got %v", field, err)
		}
	}
	if len(repo.employees) != 0 {
		t.Fatalf("expected no records persisted, got %d", len(repo.employees))
	}
}

func TestEmployeeService_Create_WithPicture(t *testing.T) {
	repo := newStubEmployeeRepo()
	files := &stubFileStore{}
	svc := newTestEmployeeService(repo, files)

	input := validCreateInput()
	input.Picture = &ports.FileUpload{Filename: "avatar.png", Content: strings.NewReader("png-bytes")}

	emp, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if emp.ProfilePicture != "uploads/stored-avatar.png" {
		t.Fatalf("unexpected picture path: %q", emp.ProfilePicture)
	}
	if len(files.saved) != 1 {
		t.Fatalf("expected one stored file, got %d", len(files.saved))
	}
}

func TestEmployeeService_Get_NotFound(t *testing.T) {
	svc := newTestEmployeeService(newStubEmployeeRepo(), &stubFileStore{})

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Update_PartialPreservesFields(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	position := "Staff Engineer"
	salary := 120000.0
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEmployeeInput{
		Position: &position,
		Salary:   &salary,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Position != "Staff Engineer" || updated.Salary != 120000 {
		t.Fatalf("update not applied: %+v", updated)
	}
	// Everything absent from the request stays byte-identical.
	if updated.FirstName != created.FirstName ||
		updated.LastName != created.LastName ||
		updated.Email != created.Email ||
		updated.EmployeeID != created.EmployeeID ||
		updated.Department != created.Department ||
		!updated.DateOfJoining.Equal(created.DateOfJoining) {
		t.Fatalf("unspecified fields changed: %+v vs %+v", updated, created)
	}
}

func TestEmployeeService_Update_PresentButEmptyClears(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})
	created, _ := svc.Create(context.Background(), validCreateInput())

	empty := ""
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEmployeeInput{Position: &empty})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Position != "" {
		t.Fatalf("explicitly empty field should overwrite, got %q", updated.Position)
	}
}

func TestEmployeeService_Update_ReplacePictureRemovesOld(t *testing.T) {
	repo := newStubEmployeeRepo()
	files := &stubFileStore{}
	svc := newTestEmployeeService(repo, files)

	input := validCreateInput()
	input.Picture = &ports.FileUpload{Filename: "old.png", Content: strings.NewReader("old")}
	created, _ := svc.Create(context.Background(), input)

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateEmployeeInput{
		Picture: &ports.FileUpload{Filename: "new.png", Content: strings.NewReader("new")},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.ProfilePicture != "uploads/stored-new.png" {
		t.Fatalf("expected new path, got %q", updated.ProfilePicture)
	}
	if len(files.removed) != 1 || files.removed[0] != "uploads/stored-old.png" {
		t.Fatalf("expected old file removed, got %v", files.removed)
	}
}

func TestEmployeeService_Update_RemoveFailureAborts(t *testing.T) {
	repo := newStubEmployeeRepo()
	files := &stubFileStore{}
	svc := newTestEmployeeService(repo, files)

	input := validCreateInput()
	input.Picture = &ports.FileUpload{Filename: "old.png", Content: strings.NewReader("old")}
	created, _ := svc.Create(context.Background(), input)

	files.removeErr = errors.New("disk on fire")
	_, err := svc.Update(context.Background(), created.ID, ports.UpdateEmployeeInput{
		Picture: &ports.FileUpload{Filename: "new.png", Content: strings.NewReader("new")},
	})
	if err == nil {
		t.Fatalf("expected removal error to propagate")
	}

	// The stored record keeps the old path.
	current, _ := svc.Get(context.Background(), created.ID)
	if current.ProfilePicture != "uploads/stored-old.png" {
		t.Fatalf("record changed despite failed removal: %q", current.ProfilePicture)
	}
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc := newTestEmployeeService(newStubEmployeeRepo(), &stubFileStore{})

	name := "Nobody"
	if _, err := svc.Update(context.Background(), "missing", ports.UpdateEmployeeInput{FirstName: &name}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Delete_RemovesRecordAndFile(t *testing.T) {
	repo := newStubEmployeeRepo()
	files := &stubFileStore{}
	svc := newTestEmployeeService(repo, files)

	input := validCreateInput()
	input.Picture = &ports.FileUpload{Filename: "avatar.png", Content: strings.NewReader("png")}
	created, _ := svc.Create(context.Background(), input)

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(files.removed) != 1 {
		t.Fatalf("expected stored file removed, got %v", files.removed)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
}

func TestEmployeeService_List_Filter(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})

	a := validCreateInput()
	b := validCreateInput()
	b.EmployeeID = "E-1002"
	b.Position = "Intern"
	c := validCreateInput()
	c.EmployeeID = "E-1003"
	c.Department = "Sales"
	for _, in := range []ports.CreateEmployeeInput{a, b, c} {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	all, err := svc.List(context.Background(), ports.EmployeeFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected full set, got %d", len(all))
	}

	both, err := svc.List(context.Background(), ports.EmployeeFilter{Department: "Engineering", Position: "Intern"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(both) != 1 || both[0].EmployeeID != "E-1002" {
		t.Fatalf("AND filter mismatch: %+v", both)
	}
}

func TestEmployeeService_List_NewestFirst(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	// Seeded out of creation order on purpose; only created_at may decide.
	for i, id := range []string{"E-1002", "E-1001", "E-1003"} {
		in := validCreateInput()
		emp := &domain.Employee{
			EmployeeID:    id,
			FirstName:     in.FirstName,
			LastName:      in.LastName,
			Email:         in.Email,
			Position:      in.Position,
			Salary:        in.Salary,
			DateOfJoining: in.DateOfJoining,
			Department:    in.Department,
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := repo.Create(context.Background(), emp); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	all, err := svc.List(context.Background(), ports.EmployeeFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("no filters must return the full set, got %d", len(all))
	}

	want := []string{"E-1003", "E-1001", "E-1002"}
	for i, emp := range all {
		if emp.EmployeeID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], emp.EmployeeID)
		}
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Fatalf("created_at not descending at position %d", i)
		}
	}
}

func TestEmployeeService_ExportXLSX(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := newTestEmployeeService(repo, &stubFileStore{})
	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportXLSX(context.Background(), ports.EmployeeFilter{}, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected workbook bytes")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Fatalf("output does not look like an xlsx file")
	}
}
