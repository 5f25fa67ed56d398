package auditlog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "document-manager-api/internal/domain/auditlog"
	"document-manager-api/internal/domain/criteria"
)

func TestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(InsertAuditLog)).
		WithArgs(pgxmock.AnyArg(), "doc-1", "Document", "CREATE", "Invoice 42", "user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepository(mock)
	err = repo.Create(context.Background(),
		domain.New(domain.TypeCreate, domain.ClassDocument, "doc-1", "Invoice 42", "user-1"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SystemAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(InsertAuditLog)).
		WithArgs(pgxmock.AnyArg(), "user-1", "User", "DELETE", "alice", "system", pgxmock.AnyArg()).
		WillReturnError(errors.New("conn reset"))

	err = NewRepository(mock).Create(context.Background(),
		domain.New(domain.TypeDelete, domain.ClassUser, "user-1", "alice", ""))
	require.ErrorContains(t, err, "insert audit log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByCriteria(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	where := " WHERE entity_id = $1"

	mock.ExpectQuery(regexp.QuoteMeta(countAuditLogs + where)).
		WithArgs("doc-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(selectAuditLogs + where + orderAuditLogs + " LIMIT $2")).
		WithArgs("doc-1", 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "entity_id", "entity_class", "type", "message", "user_id", "create_date"}).
			AddRow("log-2", "doc-1", "Document", "UPDATE", "Invoice 42", "user-1", now).
			AddRow("log-1", "doc-1", "Document", "CREATE", "Invoice 42", "user-1", now.Add(-time.Minute)))

	res, err := NewRepository(mock).FindByCriteria(context.Background(),
		domain.Criteria{EntityID: "doc-1"}, criteria.NewPage(0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, domain.TypeUpdate, res.Items[0].Type)
	assert.Equal(t, domain.ClassDocument, res.Items[1].EntityClass)
	assert.NoError(t, mock.ExpectationsWereMet())
}
