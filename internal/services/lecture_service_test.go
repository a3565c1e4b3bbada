package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DVDemon/frieren/internal/models"
)

func TestCapacityOf(t *testing.T) {
	t.Run("nil max means unlimited", func(t *testing.T) {
		lecture := &models.Lecture{ID: 1, Number: 3, Topic: "Generics"}

		capacity := CapacityOf(lecture, 250)

		assert.True(t, capacity.CanAttend)
		assert.False(t, capacity.IsFull)
		assert.Nil(t, capacity.RemainingSlots)
		assert.Equal(t, 250, capacity.CurrentAttendance)
	})

	t.Run("seats remaining", func(t *testing.T) {
		lecture := &models.Lecture{ID: 1, Number: 3, MaxStudent: intPtr(20)}

		capacity := CapacityOf(lecture, 15)

		assert.True(t, capacity.CanAttend)
		assert.False(t, capacity.IsFull)
		assert.Equal(t, 5, *capacity.RemainingSlots)
	})

	t.Run("exactly at the limit", func(t *testing.T) {
		lecture := &models.Lecture{ID: 1, Number: 3, MaxStudent: intPtr(20)}

		capacity := CapacityOf(lecture, 20)

		assert.False(t, capacity.CanAttend)
		assert.True(t, capacity.IsFull)
		assert.Equal(t, 0, *capacity.RemainingSlots)
	})

	t.Run("over the limit clamps remaining to zero", func(t *testing.T) {
		lecture := &models.Lecture{ID: 1, Number: 3, MaxStudent: intPtr(20)}

		capacity := CapacityOf(lecture, 25)

		assert.True(t, capacity.IsFull)
		assert.Equal(t, 0, *capacity.RemainingSlots)
	})

	t.Run("nil lecture", func(t *testing.T) {
		capacity := CapacityOf(nil, 10)

		assert.True(t, capacity.CanAttend)
		assert.Equal(t, 10, capacity.CurrentAttendance)
	})
}
