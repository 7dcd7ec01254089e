package robot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSelfCollidingNoContacts(t *testing.T) {
	g, _, _, _ := newTestGripper(t)

	assert.False(t, g.IsSelfColliding(context.Background(), "torso"))
	assert.False(t, g.IsSelfColliding(context.Background(), "r_wrist", "l_wrist"))
}

func TestIsSelfCollidingUnknownLink(t *testing.T) {
	g, _, engine, _ := newTestGripper(t)
	engine.contacts = []ContactPoint{{LinkA: 0, LinkB: 1}}

	// An unknown name anywhere in the set degrades the whole call to false.
	assert.False(t, g.IsSelfColliding(context.Background(), "nonexistent_link"))
	assert.False(t, g.IsSelfColliding(context.Background(), "torso", "nonexistent_link"))
}

func TestIsSelfCollidingContact(t *testing.T) {
	g, _, engine, _ := newTestGripper(t)
	engine.contacts = []ContactPoint{{LinkA: 0, LinkB: 1, Distance: -0.001}}

	assert.True(t, g.IsSelfColliding(context.Background(), "torso"))
}

// A contact between two links must be found from either endpoint, whichever
// side of the pair the engine reported it on.
func TestIsSelfCollidingSymmetric(t *testing.T) {
	g, _, engine, _ := newTestGripper(t)
	engine.contacts = []ContactPoint{{LinkA: 0, LinkB: 1, Distance: -0.001}}

	assert.True(t, g.IsSelfColliding(context.Background(), "torso"))   // link 0, side A
	assert.True(t, g.IsSelfColliding(context.Background(), "r_wrist")) // link 1, side B
}

func TestIsSelfCollidingEngineFailure(t *testing.T) {
	g, _, engine, _ := newTestGripper(t)
	engine.contactErr = errors.New("engine gone")

	assert.False(t, g.IsSelfColliding(context.Background(), "torso"))
}

func TestIsSelfCollidingNotLoaded(t *testing.T) {
	g := NewGripper(newFakeModel(testDescription()), &fakeEngine{}, &fakeController{})

	assert.False(t, g.IsSelfColliding(context.Background(), "torso"))
}
