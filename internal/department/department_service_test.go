package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"
	departmentMock "go-hrms/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const cacheKey = "departments:all"

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   department.NewService(db, repo, dbRedis),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]department.DepartmentResponse{{ID: "d-1", Name: "HR"}, {ID: "d-2", Name: "IT"}})
		deps.redismock.ExpectGet(cacheKey).SetVal(string(cached))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "HR", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return([]department.Department{{ID: id, Name: "Finance"}}, nil)

		expected, _ := json.Marshal([]department.DepartmentResponse{{ID: id.String(), Name: "Finance"}})
		deps.redismock.ExpectSet(cacheKey, expected, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db connection error"))

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates the list cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "Engineering", d.Name)
				assert.NotEqual(t, uuid.Nil, d.ID)
				return nil
			})
		deps.redismock.ExpectDel(cacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "  Engineering "})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "   "})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameRequired)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(&department.Department{ID: targetID, Name: "HR"}, nil)

		resp, err := deps.service.GetByID(ctx, targetID.String())

		assert.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(nil, gorm.ErrRecordNotFound)

		resp, err := deps.service.GetByID(ctx, targetID.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.Empty(t, resp.ID)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New()
	req := department.UpdateDepartmentRequest{Name: "HR Updated", Description: "people"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(&department.Department{ID: targetID, Name: "Old HR"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, req.Name, d.Name)
				assert.Equal(t, "people", d.Description)
				return nil
			})
		deps.redismock.ExpectDel(cacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, targetID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, req.Name, resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rename drops the employee list too", func(t *testing.T) {
		deps := setupServiceTest(t)
		dbRedis, redisMock := redismock.NewClientMock()
		svc := department.NewServiceWithCache(deps.db, deps.repo, dbRedis, []string{"employees:list"})

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(&department.Department{ID: targetID, Name: "Old HR"}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		redisMock.ExpectDel(cacheKey, "employees:list").SetVal(2)

		_, err := svc.Update(ctx, targetID.String(), req)

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("not found rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, targetID.String(), req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("update failed rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID.String()).Return(&department.Department{ID: targetID}, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(errors.New("db connection error"))

		_, err := deps.service.Update(ctx, targetID.String(), req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	targetID := uuid.New().String()

	t.Run("unused department is deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, targetID).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, targetID).Return(nil)
		deps.redismock.ExpectDel(cacheKey).SetVal(1)

		err := deps.service.Delete(ctx, targetID)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("department in use is refused", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(&department.Department{}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, targetID).Return(int64(3), nil)

		err := deps.service.Delete(ctx, targetID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, targetID).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, targetID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
