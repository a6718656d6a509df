package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amityhq/amity-api/internal/domain"
)

func TestBirthdateRangeForAge(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("bounds bracket exactly the requested derived age", func(t *testing.T) {
		for _, age := range []int{0, 1, 18, 26, 64} {
			after, until := BirthdateRangeForAge(age, now)

			// Just inside the window on each side.
			youngest := domain.User{Birthdate: until}
			oldest := domain.User{Birthdate: after.Add(time.Minute)}
			assert.Equal(t, age, youngest.Age(now), "age %d upper bound", age)
			assert.Equal(t, age, oldest.Age(now), "age %d lower bound", age)

			// Just outside the window on each side.
			tooYoung := domain.User{Birthdate: until.Add(time.Hour)}
			tooOld := domain.User{Birthdate: after.Add(-time.Hour)}
			assert.NotEqual(t, age, tooYoung.Age(now), "age %d above upper bound", age)
			assert.Equal(t, age+1, tooOld.Age(now), "age %d below lower bound", age)
		}
	})

	t.Run("window spans one derived year", func(t *testing.T) {
		after, until := BirthdateRangeForAge(30, now)
		assert.InDelta(t, 365.25*24, until.Sub(after).Hours(), 1e-6)
	})
}
