package postgres_test

import (
	"testing"
	"time"

	gorm "github.com/jinzhu/gorm"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/models"
	repo "github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository"
	"github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/memory"
	pg "github.com/daniyarovaalmaty/lensflow-crm-sub001/internal/repository/postgres"
)

type pgEnv struct {
	pool     *dockertest.Pool
	resource *dockertest.Resource
	DB       *gorm.DB
	R        *repo.Repository
}

func upPostgres(t *testing.T) *pgEnv {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_DB=lensflow",
		"POSTGRES_USER=app",
		"POSTGRES_PASSWORD=app",
	})
	require.NoError(t, err)

	env := &pgEnv{pool: pool, resource: resource}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	require.NoError(t, pool.Retry(func() error {
		hostPort := resource.GetPort("5432/tcp")
		db, err := pg.ConnectDB(pg.Config{
			Host:     "localhost",
			Port:     hostPort,
			Username: "app",
			Password: "app",
			DbName:   "lensflow",
			SslMode:  "disable",
		})
		if err != nil {
			return err
		}
		env.DB = db

		if err := db.AutoMigrate(
			&models.Order{}, &models.Patient{}, &models.Defect{},
			&models.User{}, &models.Organization{}, &models.Product{},
		).Error; err != nil {
			return err
		}

		env.R = repo.NewPostgresRepository(db)
		return nil
	}))

	return env
}

func testOrder(number string) models.Order {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Order{
		Number:        number,
		Status:        models.StatusPending,
		Patient:       &models.Patient{FullName: "Aigerim T.", Phone: "+77010000000"},
		LensConfig:    []byte(`{"sphere":{"od":-1.25,"os":-1.5}}`),
		PaymentStatus: models.PaymentUnpaid,
		CreatedBy:     "doc-1",
		OrgID:         "org-a",
		CreatedAt:     now,
		Meta:          models.Meta{UpdatedAt: now},
	}
}

func Test_Postgres_Order_RoundTrip(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.R.OrderStore.Create(testOrder("LF-IT-1")))

	got, err := env.R.OrderStore.Get("LF-IT-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, got.Status)
	require.NotNil(t, got.Patient)
	require.Equal(t, "Aigerim T.", got.Patient.FullName)

	now := time.Now().UTC().Truncate(time.Second)
	got.Status = models.StatusInProduction
	got.ProductionStartedAt = &now
	got.Defects = append(got.Defects, models.Defect{
		ID: "d-1", Qty: 2, Note: "edge chip", CreatedAt: now,
	})
	got.Meta.UpdatedAt = now
	require.NoError(t, env.R.OrderStore.Update(got))

	again, err := env.R.OrderStore.Get("LF-IT-1")
	require.NoError(t, err)
	require.Equal(t, models.StatusInProduction, again.Status)
	require.NotNil(t, again.ProductionStartedAt)
	require.Len(t, again.Defects, 1)
	require.Equal(t, "edge chip", again.Defects[0].Note)

	all, err := env.R.OrderStore.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func Test_Postgres_Order_NotFound(t *testing.T) {
	env := upPostgres(t)

	_, err := env.R.OrderStore.Get("ghost")
	require.ErrorIs(t, err, memory.ErrNotFound)

	require.ErrorIs(t, env.R.OrderStore.Update(testOrder("ghost")), memory.ErrNotFound)
}

func Test_Postgres_Uniqueness_Conflicts(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.R.ProductStore.CreateProduct(models.Product{ID: "p1", SKU: "CR39-150", Name: "CR-39 1.5", Price: 4000}))
	err := env.R.ProductStore.CreateProduct(models.Product{ID: "p2", SKU: "CR39-150", Name: "dup", Price: 1})
	require.ErrorIs(t, err, memory.ErrConflict)

	require.NoError(t, env.R.UserStore.CreateUser(models.User{ID: "u1", Email: "a@lab.kz", Role: models.RoleLaboratory}))
	err = env.R.UserStore.CreateUser(models.User{ID: "u2", Email: "a@lab.kz", Role: models.RoleLaboratory})
	require.ErrorIs(t, err, memory.ErrConflict)
}

func Test_Postgres_ActiveOrgs(t *testing.T) {
	env := upPostgres(t)

	require.NoError(t, env.R.OrgStore.CreateOrg(models.Organization{ID: "org-a", Name: "Vision+", City: "Almaty", Status: models.OrgActive, Discount: 10}))
	require.NoError(t, env.R.OrgStore.CreateOrg(models.Organization{ID: "org-b", Name: "Closed", City: "Astana", Status: models.OrgInactive}))

	active, err := env.R.OrgStore.GetActiveOrgs()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "org-a", active[0].ID)
}
