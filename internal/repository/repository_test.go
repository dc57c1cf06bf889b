package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	db := &sql.DB{}
	assert.NotNil(t, NewUserRepo(db))
	assert.NotNil(t, NewTokenRepo(db))
	assert.NotNil(t, NewFlightRepo(db))
	assert.NotNil(t, NewBookingRepo(db))
}
