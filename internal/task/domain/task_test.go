package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_Validate(t *testing.T) {
	valid := &Task{Description: "Buy milk", Owner: "u1"}
	assert.NoError(t, valid.Validate())

	blank := &Task{Description: "   ", Owner: "u1"}
	blank.Normalize()
	assert.Error(t, blank.Validate())

	orphan := &Task{Description: "Buy milk"}
	assert.Error(t, orphan.Validate())
}
