package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/testutil"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func seedUploader(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	admin := testutil.NewUser(t, 0, "admin@example.edu", models.RoleAdmin)
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), admin))
	return admin
}

// seedCatalog inserts projects oldest first so that creation order is stable
func seedCatalog(t *testing.T, db *gorm.DB, uploaderID uint) []*models.Project {
	t.Helper()
	repo := repository.NewProjectRepository(db)
	base := time.Now().Add(-time.Hour)

	projects := []*models.Project{
		testutil.NewProject(0, "Smart Irrigation", "Ana Cruz", 2021, "IoT", uploaderID),
		testutil.NewProject(0, "Library Database", "Ben Reyes", 2022, "Database", uploaderID),
		testutil.NewProject(0, "Crop Disease Detection", "Carla Diaz", 2023, "AI/ML", uploaderID),
		testutil.NewProject(0, "IoT Weather Station", "Dan Lim", 2023, "IoT", uploaderID),
		testutil.NewProject(0, "100%_Uptime Monitor", "Eve Tan", 2024, "Networking", uploaderID),
	}
	for i, p := range projects {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(context.Background(), p))
	}
	return projects
}

func titles(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Title)
	}
	return out
}

// ==================== PROJECT REPOSITORY TESTS ====================

func TestProjectRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)

	project := testutil.NewProject(0, "Smart Irrigation", "Ana Cruz", 2021, "IoT", admin.ID)
	require.NoError(t, repo.Create(ctx, project))
	require.NotZero(t, project.ID)

	found, err := repo.FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smart Irrigation", found.Title)
	assert.False(t, found.IsDeleted)
	require.NotNil(t, found.Uploader)
	assert.Equal(t, admin.Email, found.Uploader.Email)

	t.Run("Duplicate title and author", func(t *testing.T) {
		dup := testutil.NewProject(0, "Smart Irrigation", "Ana Cruz", 2024, "Web", admin.ID)
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, repository.ErrProjectAlreadyExists)
	})

	t.Run("Same title by another author", func(t *testing.T) {
		other := testutil.NewProject(0, "Smart Irrigation", "Someone Else", 2024, "IoT", admin.ID)
		assert.NoError(t, repo.Create(ctx, other))
	})

	t.Run("Duplicate of a trashed project", func(t *testing.T) {
		require.NoError(t, repo.SoftDelete(ctx, project.ID, time.Now()))

		dup := testutil.NewProject(0, "Smart Irrigation", "Ana Cruz", 2025, "IoT", admin.ID)
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, repository.ErrProjectAlreadyExists)
	})

	t.Run("Missing project", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	})
}

func TestProjectRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)
	projects := seedCatalog(t, db, admin.ID)

	// trash "100%_Uptime Monitor"
	require.NoError(t, repo.SoftDelete(ctx, projects[4].ID, time.Now()))

	tests := []struct {
		name    string
		id      uint
		changes repository.ProjectChanges
		wantErr error
		check   func(t *testing.T, p *models.Project)
	}{
		{
			name:    "Partial update keeps other fields",
			id:      projects[0].ID,
			changes: repository.ProjectChanges{Year: intPtr(2020), Field: strPtr("Agriculture")},
			check: func(t *testing.T, p *models.Project) {
				assert.Equal(t, 2020, p.Year)
				assert.Equal(t, "Agriculture", p.Field)
				assert.Equal(t, "Smart Irrigation", p.Title)
				assert.Equal(t, "Ana Cruz", p.Author)
			},
		},
		{
			name:    "Empty change set returns current row",
			id:      projects[1].ID,
			changes: repository.ProjectChanges{},
			check: func(t *testing.T, p *models.Project) {
				assert.Equal(t, "Library Database", p.Title)
			},
		},
		{
			name:    "Collides with another project",
			id:      projects[1].ID,
			changes: repository.ProjectChanges{Title: strPtr("Smart Irrigation"), Author: strPtr("Ana Cruz")},
			wantErr: repository.ErrProjectAlreadyExists,
		},
		{
			name:    "Collides with a trashed project",
			id:      projects[3].ID,
			changes: repository.ProjectChanges{Title: strPtr("100%_Uptime Monitor"), Author: strPtr("Eve Tan")},
			wantErr: repository.ErrProjectAlreadyExists,
		},
		{
			name:    "Missing project",
			id:      9999,
			changes: repository.ProjectChanges{Year: intPtr(2020)},
			wantErr: repository.ErrProjectNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := repo.Update(ctx, tt.id, tt.changes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, updated)
		})
	}
}

func TestProjectRepository_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)
	projects := seedCatalog(t, db, admin.ID)
	id := projects[0].ID

	// active -> trashed
	require.NoError(t, repo.SoftDelete(ctx, id, time.Now()))
	trashed, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, trashed.IsDeleted)
	assert.NotNil(t, trashed.DeletedAt)

	// trashed -> trashed is rejected
	assert.ErrorIs(t, repo.SoftDelete(ctx, id, time.Now()), repository.ErrProjectAlreadyTrashed)

	// trashed -> active
	require.NoError(t, repo.Restore(ctx, id))
	restored, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)

	// active -> active is rejected
	assert.ErrorIs(t, repo.Restore(ctx, id), repository.ErrProjectNotTrashed)

	// missing rows
	assert.ErrorIs(t, repo.SoftDelete(ctx, 9999, time.Now()), repository.ErrProjectNotFound)
	assert.ErrorIs(t, repo.Restore(ctx, 9999), repository.ErrProjectNotFound)
}

func TestProjectRepository_HardDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	savedRepo := repository.NewSavedProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)
	projects := seedCatalog(t, db, admin.ID)

	student := testutil.NewUser(t, 0, "student@example.edu", models.RoleStudent)
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, student))
	require.NoError(t, savedRepo.Create(ctx, &models.SavedProject{UserID: student.ID, ProjectID: projects[0].ID}))
	require.NoError(t, savedRepo.Create(ctx, &models.SavedProject{UserID: student.ID, ProjectID: projects[1].ID}))

	// hard delete works from the active state too
	require.NoError(t, repo.HardDelete(ctx, projects[0].ID))

	_, err := repo.FindByID(ctx, projects[0].ID)
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)

	exists, err := savedRepo.Exists(ctx, student.ID, projects[0].ID)
	require.NoError(t, err)
	assert.False(t, exists, "bookmarks of a removed project are removed with it")

	exists, err = savedRepo.Exists(ctx, student.ID, projects[1].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// from the trashed state
	require.NoError(t, repo.SoftDelete(ctx, projects[2].ID, time.Now()))
	require.NoError(t, repo.HardDelete(ctx, projects[2].ID))

	assert.ErrorIs(t, repo.HardDelete(ctx, projects[0].ID), repository.ErrProjectNotFound)
}

func TestProjectRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)
	projects := seedCatalog(t, db, admin.ID)

	// trash "Library Database"
	require.NoError(t, repo.SoftDelete(ctx, projects[1].ID, time.Now()))

	all := repository.Pagination{Page: 1, Limit: 100}

	tests := []struct {
		name       string
		filter     repository.ProjectFilter
		page       repository.Pagination
		wantTitles []string
		wantTotal  int64
	}{
		{
			name:       "Active projects newest first",
			filter:     repository.ProjectFilter{},
			page:       all,
			wantTitles: []string{"100%_Uptime Monitor", "IoT Weather Station", "Crop Disease Detection", "Smart Irrigation"},
			wantTotal:  4,
		},
		{
			name:       "Include deleted",
			filter:     repository.ProjectFilter{IncludeDeleted: true},
			page:       all,
			wantTitles: []string{"100%_Uptime Monitor", "IoT Weather Station", "Crop Disease Detection", "Library Database", "Smart Irrigation"},
			wantTotal:  5,
		},
		{
			name:       "Only deleted",
			filter:     repository.ProjectFilter{OnlyDeleted: true},
			page:       all,
			wantTitles: []string{"Library Database"},
			wantTotal:  1,
		},
		{
			name:       "Field is case insensitive",
			filter:     repository.ProjectFilter{Field: "iot"},
			page:       all,
			wantTitles: []string{"IoT Weather Station", "Smart Irrigation"},
			wantTotal:  2,
		},
		{
			name:       "Field all means no restriction",
			filter:     repository.ProjectFilter{Field: "ALL"},
			page:       all,
			wantTitles: []string{"100%_Uptime Monitor", "IoT Weather Station", "Crop Disease Detection", "Smart Irrigation"},
			wantTotal:  4,
		},
		{
			name:       "Exact year",
			filter:     repository.ProjectFilter{Year: intPtr(2023)},
			page:       all,
			wantTitles: []string{"IoT Weather Station", "Crop Disease Detection"},
			wantTotal:  2,
		},
		{
			name:       "Exact year wins over range",
			filter:     repository.ProjectFilter{Year: intPtr(2021), YearFrom: intPtr(2023), YearTo: intPtr(2024)},
			page:       all,
			wantTitles: []string{"Smart Irrigation"},
			wantTotal:  1,
		},
		{
			name:       "Year range is inclusive",
			filter:     repository.ProjectFilter{YearFrom: intPtr(2022), YearTo: intPtr(2023)},
			page:       all,
			wantTitles: []string{"IoT Weather Station", "Crop Disease Detection"},
			wantTotal:  2,
		},
		{
			name:       "Search matches title author or field",
			filter:     repository.ProjectFilter{Search: "IOT"},
			page:       all,
			wantTitles: []string{"IoT Weather Station", "Smart Irrigation"},
			wantTotal:  2,
		},
		{
			name:       "Search by author",
			filter:     repository.ProjectFilter{Search: "carla"},
			page:       all,
			wantTitles: []string{"Crop Disease Detection"},
			wantTotal:  1,
		},
		{
			name:       "Search treats wildcards literally",
			filter:     repository.ProjectFilter{Search: "%_"},
			page:       all,
			wantTitles: []string{"100%_Uptime Monitor"},
			wantTotal:  1,
		},
		{
			name:       "Search combined with field",
			filter:     repository.ProjectFilter{Search: "weather", Field: "IoT"},
			page:       all,
			wantTitles: []string{"IoT Weather Station"},
			wantTotal:  1,
		},
		{
			name:       "Second page",
			filter:     repository.ProjectFilter{},
			page:       repository.Pagination{Page: 2, Limit: 3},
			wantTitles: []string{"Smart Irrigation"},
			wantTotal:  4,
		},
		{
			name:       "Page past the end",
			filter:     repository.ProjectFilter{},
			page:       repository.Pagination{Page: 5, Limit: 3},
			wantTitles: []string{},
			wantTotal:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := repo.List(ctx, tt.filter, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantTitles, titles(got))
			for _, p := range got {
				assert.NotNil(t, p.Uploader)
			}
		})
	}
}

func TestProjectRepository_ListFieldWithYearFrom(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectRepository(db)
	ctx := context.Background()
	admin := seedUploader(t, db)

	base := time.Now().Add(-time.Hour)
	for i, p := range []*models.Project{
		testutil.NewProject(0, "Greenhouse Sensors", "Ana Cruz", 2023, "IoT", admin.ID),
		testutil.NewProject(0, "Smart Parking", "Ben Reyes", 2024, "IoT", admin.ID),
		testutil.NewProject(0, "Thesis Index", "Carla Diaz", 2024, "Database", admin.ID),
	} {
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, p))
	}

	got, total, err := repo.List(ctx,
		repository.ProjectFilter{Field: "IoT", YearFrom: intPtr(2024)},
		repository.Pagination{Page: 1, Limit: 100},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Smart Parking"}, titles(got))
}
