package cmd

import (
	"testing"

	"gotest.tools/assert"
)

func TestProductNamesFromRequest(t *testing.T) {
	flagProducts = ""

	names := productNames("Create a venue deck. products: Interactive Bar, Digital Flipbook. Make it short.")
	assert.DeepEqual(t, names, []string{"Interactive Bar", "Digital Flipbook"})
}

func TestProductNamesFlagWins(t *testing.T) {
	flagProducts = "Holoscreen"
	defer func() { flagProducts = "" }()

	names := productNames("whatever. products: Interactive Bar.")
	assert.DeepEqual(t, names, []string{"Holoscreen"})
}

func TestProductNamesMissing(t *testing.T) {
	flagProducts = ""
	assert.Assert(t, productNames("a deck with no marker") == nil)
}

func TestProductNamesTrimsEmpties(t *testing.T) {
	flagProducts = " Holoscreen , , Interactive Bar "
	defer func() { flagProducts = "" }()

	assert.DeepEqual(t, productNames(""), []string{"Holoscreen", "Interactive Bar"})
}
