// Package seed fills a development database with demo users, projects and
// bookmarks. It is meant for local development and tests only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
)

// Fields is the pool of research areas demo projects are drawn from
var Fields = []string{
	"IoT",
	"Database",
	"AI/ML",
	"Web Development",
	"Mobile Development",
	"Cybersecurity",
	"Networking",
	"Data Science",
}

// Options controls how much demo data is generated
type Options struct {
	AdminEmail          string
	AdminPassword       string
	StudentPassword     string
	Students            int
	Projects            int
	BookmarksPerStudent int
	TrashedProjects     int
	// RandSeed makes the generated data reproducible; 0 picks a random seed
	RandSeed int64
}

// DefaultOptions returns a small but useful demo data set
func DefaultOptions() Options {
	return Options{
		AdminEmail:          "admin@capstone.local",
		AdminPassword:       "admin12345",
		StudentPassword:     "student12345",
		Students:            10,
		Projects:            40,
		BookmarksPerStudent: 3,
		TrashedProjects:     3,
	}
}

// Summary counts what a run created
type Summary struct {
	Admins    int
	Students  int
	Projects  int
	Trashed   int
	Bookmarks int
}

// Factory builds demo entities and persists them through the repositories
type Factory struct {
	users      repository.UserRepository
	projects   repository.ProjectRepository
	saved      repository.SavedProjectRepository
	bcryptCost int64
	logger     *slog.Logger
}

// NewFactory creates a new Factory bound to the repositories
func NewFactory(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	saved repository.SavedProjectRepository,
	bcryptCost int64,
	logger *slog.Logger,
) *Factory {
	return &Factory{
		users:      users,
		projects:   projects,
		saved:      saved,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Run seeds the database. Existing rows that collide with generated ones
// are skipped, so running twice is safe.
func (f *Factory) Run(ctx context.Context, opts Options) (*Summary, error) {
	faker := gofakeit.New(opts.RandSeed)
	summary := &Summary{}

	admin, err := service.CreateAdmin(ctx, f.users, f.bcryptCost, service.AdminInput{
		FullName: "Archive Administrator",
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
	})
	switch {
	case err == nil:
		summary.Admins++
	case errors.Is(err, service.ErrEmailAlreadyExists):
		admin, err = f.users.FindByEmail(ctx, opts.AdminEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to load existing admin: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	students := make([]*models.User, 0, opts.Students)
	studentHash, err := service.HashPassword(opts.StudentPassword, f.bcryptCost)
	if err != nil {
		return nil, err
	}
	for i := 0; i < opts.Students; i++ {
		student := &models.User{
			FullName:      faker.Name(),
			ContactNumber: faker.Phone(),
			Email:         fmt.Sprintf("student%d.%s@capstone.local", i+1, strings.ToLower(faker.LastName())),
			Password:      studentHash,
			Role:          models.RoleStudent,
		}
		if err := f.users.Create(ctx, student); err != nil {
			if errors.Is(err, repository.ErrEmailAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create student: %w", err)
		}
		students = append(students, student)
		summary.Students++
	}

	projects := make([]*models.Project, 0, opts.Projects)
	for i := 0; i < opts.Projects; i++ {
		project := f.BuildProject(faker, admin.ID)
		if err := f.projects.Create(ctx, project); err != nil {
			if errors.Is(err, repository.ErrProjectAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		projects = append(projects, project)
		summary.Projects++
	}

	for i := 0; i < opts.TrashedProjects && i < len(projects); i++ {
		if err := f.projects.SoftDelete(ctx, projects[i].ID, projects[i].CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to trash project: %w", err)
		}
		summary.Trashed++
	}

	for _, student := range students {
		for j := 0; j < opts.BookmarksPerStudent && len(projects) > 0; j++ {
			project := projects[faker.Number(0, len(projects)-1)]
			err := f.saved.Create(ctx, &models.SavedProject{UserID: student.ID, ProjectID: project.ID})
			if err != nil {
				if errors.Is(err, repository.ErrAlreadySaved) {
					continue
				}
				return nil, fmt.Errorf("failed to create bookmark: %w", err)
			}
			summary.Bookmarks++
		}
	}

	f.logger.Info("🌱 [Seed] Demo data created",
		"admins", summary.Admins,
		"students", summary.Students,
		"projects", summary.Projects,
		"trashed", summary.Trashed,
		"bookmarks", summary.Bookmarks,
	)
	return summary, nil
}

// BuildProject constructs a random project without persisting it
func (f *Factory) BuildProject(faker *gofakeit.Faker, uploaderID uint) *models.Project {
	title := strings.TrimSuffix(faker.Sentence(faker.Number(3, 7)), ".")
	return &models.Project{
		Title:      title,
		Author:     faker.Name(),
		Year:       faker.Number(2015, 2025),
		Field:      faker.RandomString(Fields),
		FileURL:    fmt.Sprintf("https://files.capstone.local/projects/%s.pdf", faker.UUID()),
		UploadedBy: uploaderID,
	}
}
