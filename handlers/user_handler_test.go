package handlers

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/nilesh-dagdi/CampusMart/models"
)

func TestDeleteUserCascade(t *testing.T) {
	t.Run("removes every reference before the user row", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := models.User{ID: 5}

		// Expectations are ordered, so the user row going last is part
		// of what this asserts.
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "messages" WHERE sender_id = \$1 OR receiver_id = \$2`).
			WithArgs(5, 5).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "wishlist_items" WHERE user_id = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "purchases" WHERE buyer_id = \$1 OR seller_id = \$2`).
			WithArgs(5, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT "id" FROM "items" WHERE seller_id = \$1`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9).AddRow(10))
		mock.ExpectExec(`DELETE FROM "wishlist_items" WHERE item_id IN \(\$1,\$2\)`).
			WithArgs(9, 10).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "messages" WHERE item_id IN \(\$1,\$2\)`).
			WithArgs(9, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "purchases" WHERE item_id IN \(\$1,\$2\)`).
			WithArgs(9, 10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "items" WHERE seller_id = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "users" WHERE "users"\."id" = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, deleteUserCascade(db, &user))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user with no items skips the item sweep", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := models.User{ID: 5}

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "messages" WHERE sender_id = \$1 OR receiver_id = \$2`).
			WithArgs(5, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "wishlist_items" WHERE user_id = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "purchases" WHERE buyer_id = \$1 OR seller_id = \$2`).
			WithArgs(5, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT "id" FROM "items" WHERE seller_id = \$1`).
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectExec(`DELETE FROM "users" WHERE "users"\."id" = \$1`).
			WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, deleteUserCascade(db, &user))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a reference delete fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		user := models.User{ID: 5}

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "messages" WHERE sender_id = \$1 OR receiver_id = \$2`).
			WithArgs(5, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "wishlist_items" WHERE user_id = \$1`).
			WithArgs(5).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		require.Error(t, deleteUserCascade(db, &user))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
