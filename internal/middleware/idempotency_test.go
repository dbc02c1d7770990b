package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const (
	idemCacheKey = "idemp:/salary/add:u-1:key-1"
	idemLockKey  = idemCacheKey + ":lock"
)

func newIdempotencyRouter(t *testing.T, status int) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, mock := redismock.NewClientMock()

	calls := 0
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Next()
	})
	r.POST("/salary/add", Idempotency(db), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"ok": status < 300})
	})
	return r, mock, &calls
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/salary/add", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_StoresSuccessfulResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t, http.StatusCreated)

	mock.ExpectGet(idemCacheKey).RedisNil()
	mock.ExpectSetNX(idemLockKey, "locked", idempotencyLockTTL).SetVal(true)
	mock.ExpectSet(idemCacheKey, []byte(`{"status":201,"body":{"ok":true}}`), idempotencyTTL).SetVal("OK")
	mock.ExpectDel(idemLockKey).SetVal(1)

	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t, http.StatusCreated)

	mock.ExpectGet(idemCacheKey).SetVal(`{"status":201,"body":{"ok":true}}`)

	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 0, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicate(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t, http.StatusCreated)

	mock.ExpectGet(idemCacheKey).RedisNil()
	mock.ExpectSetNX(idemLockKey, "locked", idempotencyLockTTL).SetVal(false)

	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FailedResponseIsNotStored(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t, http.StatusBadRequest)

	mock.ExpectGet(idemCacheKey).RedisNil()
	mock.ExpectSetNX(idemLockKey, "locked", idempotencyLockTTL).SetVal(true)
	mock.ExpectDel(idemLockKey).SetVal(1)

	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t, http.StatusCreated)

	w := postWithKey(r, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
