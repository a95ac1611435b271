package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefault(t *testing.T) {
	res := Validate(DefaultCriteria())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.NoError(t, res.Err())
}

func TestValidateAllDisabled(t *testing.T) {
	weights := []float64{0, 12.5, 100}
	for _, w := range weights {
		c := DefaultCriteria()
		for _, cr := range c {
			cr.Enabled = false
			cr.Weight = w
		}
		res := Validate(c)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, ErrMsgNoneEnabled, "weight %v", w)
	}
}

func TestValidateWeightSum(t *testing.T) {
	c := DefaultCriteria()
	c[KeyEducation].Weight = 50

	res := Validate(c)
	assert.False(t, res.Valid)
	assert.Equal(t, []string{ErrMsgWeightSum}, res.Errors)
}

func TestValidateMaxPointsRange(t *testing.T) {
	for _, mp := range []int{0, -3, 101} {
		c := DefaultCriteria()
		c[KeyTraining].MaxPoints = mp
		res := Validate(c)
		assert.Contains(t, res.Errors, ErrMsgMaxPoints, "max points %d", mp)
	}
}

func TestValidateMaxPointsIgnoresDisabled(t *testing.T) {
	c := DefaultCriteria()
	c[KeyTraining].MaxPoints = 0
	c.Toggle(KeyTraining)
	AutoDistribute(c)

	res := Validate(c)
	assert.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestValidateZeroWeightEnabled(t *testing.T) {
	c := DefaultCriteria()
	c[KeyEducation].Weight = 0
	c[KeyExperience].Weight = 40

	res := Validate(c)
	assert.Equal(t, []string{ErrMsgWeightNotZero}, res.Errors)
}

func TestValidateReportsEachInvariantOnce(t *testing.T) {
	c := DefaultCriteria()
	c[KeyEducation].MaxPoints = 0
	c[KeyExperience].MaxPoints = 200
	c[KeyEducation].Weight = 0
	c[KeySkills].Weight = 0

	res := Validate(c)
	assert.Equal(t, []string{ErrMsgWeightSum, ErrMsgMaxPoints, ErrMsgWeightNotZero}, res.Errors)
}

func TestValidateSubCriteriaWarningsDoNotBlock(t *testing.T) {
	c := DefaultCriteria()
	c[KeyEducation].SubCriteria[0].Points = 10
	c[KeyEducation].SubCriteria[1].Points = 35

	res := Validate(c)
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Education")
	assert.Contains(t, res.Warnings[0], "descending")
}

func TestValidateSubCriteriaOutOfRangeWarning(t *testing.T) {
	c := DefaultCriteria()
	c[KeyAwards].MaxPoints = 5

	res := Validate(c)
	assert.True(t, res.Valid)
	// National (10) and Regional (6) exceed the lowered ceiling
	assert.Len(t, res.Warnings, 2)
}

func TestSubCriteriaDescending(t *testing.T) {
	cr := &Criterion{SubCriteria: []SubCriterion{{Points: 5}, {Points: 5}, {Points: 1}}}
	assert.True(t, SubCriteriaDescending(cr))

	cr.SubCriteria[2].Points = 6
	assert.False(t, SubCriteriaDescending(cr))

	assert.True(t, SubCriteriaDescending(&Criterion{}))
}

func TestValidationResultErr(t *testing.T) {
	c := DefaultCriteria()
	c[KeyEducation].Weight = 99

	err := Validate(c).Err()
	require.Error(t, err)

	var invalid *InvalidConfigError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{ErrMsgWeightSum}, invalid.Errors)
	assert.Contains(t, err.Error(), ErrMsgWeightSum)
}
