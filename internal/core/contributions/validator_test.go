package contributions_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func input(date time.Time, typ domain.ContributionType, amount string) domain.ContributionInput {
	return domain.ContributionInput{
		MemberID:   "member-1",
		AmountText: amount,
		Date:       datePtr(date),
		Type:       typ,
	}
}

func stored(id string, date time.Time, typ domain.ContributionType, amount int64) domain.Contribution {
	return domain.Contribution{
		ContributionID: id,
		MemberID:       "member-1",
		Amount:         decimal.NewFromInt(amount),
		Date:           date,
		Type:           typ,
		Status:         domain.StatusPending,
	}
}

func requireRejected(t *testing.T, result contributions.ValidationResult, kind contributions.RejectionKind) {
	t.Helper()
	require.False(t, result.Admit)
	require.NotNil(t, result.Reason)
	assert.Equal(t, kind, result.Reason.Kind)
	assert.NotEmpty(t, result.Reason.Message)
}

func TestValidate_RejectsFutureDate(t *testing.T) {
	now := day("2025-03-10").Add(15 * time.Hour)
	tomorrow := day("2025-03-11")

	result := contributions.Validate(input(tomorrow, domain.Voluntary, "5000"), nil, now)

	requireRejected(t, result, contributions.FutureDate)
}

func TestValidate_TodayIsNeverFuture(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)
	now := time.Date(2025, 3, 10, 0, 5, 0, 0, lagos)

	for _, hour := range []int{0, 9, 23} {
		candidateDate := time.Date(2025, 3, 10, hour, 59, 0, 0, lagos)
		result := contributions.Validate(input(candidateDate, domain.Voluntary, "10"), nil, now)
		assert.True(t, result.Admit, "hour %d", hour)
		assert.Nil(t, result.Reason)
	}
}

func TestValidate_FutureDateProperty(t *testing.T) {
	now := day("2025-06-15").Add(12 * time.Hour)
	for offset := -400; offset <= 400; offset += 7 {
		date := day("2025-06-15").AddDate(0, 0, offset)
		result := contributions.Validate(input(date, domain.Voluntary, "100.50"), nil, now)
		if offset > 0 {
			requireRejected(t, result, contributions.FutureDate)
		} else {
			assert.True(t, result.Admit, "offset %d", offset)
		}
	}
}

func TestValidate_RejectsSecondMandatoryInMonth(t *testing.T) {
	existing := []domain.Contribution{stored("1", day("2025-01-10"), domain.Mandatory, 25000)}

	result := contributions.Validate(input(day("2025-01-25"), domain.Mandatory, "25000"), existing, day("2025-02-01"))

	requireRejected(t, result, contributions.DuplicateMandatoryMonth)
	assert.True(t, errors.Is(result.Err(), apperrors.ErrDuplicate))
}

func TestValidate_AcceptsEditOfOwnRecord(t *testing.T) {
	existing := []domain.Contribution{stored("1", day("2025-01-10"), domain.Mandatory, 25000)}
	candidate := input(day("2025-01-15"), domain.Mandatory, "26000")
	candidate.ContributionID = "1"

	result := contributions.Validate(candidate, existing, day("2025-02-01"))

	assert.True(t, result.Admit)
	assert.Nil(t, result.Reason)
	assert.NoError(t, result.Err())
}

func TestValidate_VoluntaryIgnoresMonthlyRule(t *testing.T) {
	existing := []domain.Contribution{
		stored("1", day("2025-01-10"), domain.Mandatory, 25000),
		stored("2", day("2025-01-11"), domain.Voluntary, 1000),
	}

	result := contributions.Validate(input(day("2025-01-12"), domain.Voluntary, "1000"), existing, day("2025-02-01"))

	assert.True(t, result.Admit)
}

func TestValidate_SameMonthDifferentYearIsAllowed(t *testing.T) {
	existing := []domain.Contribution{stored("1", day("2024-01-10"), domain.Mandatory, 25000)}

	result := contributions.Validate(input(day("2025-01-10"), domain.Mandatory, "25000"), existing, day("2025-02-01"))

	assert.True(t, result.Admit)
}

func TestValidate_NoDoubleMandatoryProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := day("2030-12-31")

	for round := 0; round < 50; round++ {
		var accepted []domain.Contribution
		used := map[domain.MonthKey]bool{}

		for i := 0; i < 40; i++ {
			date := day("2020-01-01").AddDate(0, rng.Intn(96), rng.Intn(28))
			candidate := input(date, domain.Mandatory, "100")
			result := contributions.Validate(candidate, accepted, now)

			month := contributions.MonthOf(date)
			if used[month] {
				requireRejected(t, result, contributions.DuplicateMandatoryMonth)
				continue
			}
			require.True(t, result.Admit, "round %d candidate %d", round, i)
			used[month] = true
			accepted = append(accepted, stored(fmt.Sprintf("%d-%d", round, i), date, domain.Mandatory, 100))
		}

		seen := map[domain.MonthKey]bool{}
		for _, c := range accepted {
			month := contributions.MonthOf(c.Date)
			assert.False(t, seen[month], "two mandatory contributions in %s", month)
			seen[month] = true
		}
	}
}

func TestValidate_ReferenceUniqueness(t *testing.T) {
	existing := []domain.Contribution{stored("1", day("2025-01-10"), domain.Voluntary, 100)}
	existing[0].Reference = "TXN-001"
	now := day("2025-02-01")

	tests := []struct {
		name      string
		id        string
		reference string
		admit     bool
	}{
		{name: "collision with another contribution", reference: "TXN-001", admit: false},
		{name: "collision ignoring surrounding spaces", reference: "  TXN-001 ", admit: false},
		{name: "same reference on own record", id: "1", reference: "TXN-001", admit: true},
		{name: "different reference", reference: "TXN-002", admit: true},
		{name: "empty reference", reference: "", admit: true},
		{name: "blank reference", reference: "   ", admit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := input(day("2025-01-20"), domain.Voluntary, "50")
			candidate.ContributionID = tt.id
			candidate.Reference = tt.reference

			result := contributions.Validate(candidate, existing, now)

			if tt.admit {
				assert.True(t, result.Admit)
				return
			}
			requireRejected(t, result, contributions.DuplicateReference)
		})
	}
}

func TestValidate_EmptyReferencesNeverCollide(t *testing.T) {
	existing := []domain.Contribution{
		stored("1", day("2025-01-10"), domain.Voluntary, 100),
		stored("2", day("2025-01-11"), domain.Voluntary, 100),
	}

	result := contributions.Validate(input(day("2025-01-12"), domain.Voluntary, "100"), existing, day("2025-02-01"))

	assert.True(t, result.Admit)
}

func TestValidate_CheckOrder(t *testing.T) {
	now := day("2025-01-31")
	existing := []domain.Contribution{stored("1", day("2025-01-10"), domain.Mandatory, 25000)}
	existing[0].Reference = "DUP"

	tests := []struct {
		name      string
		candidate domain.ContributionInput
		want      contributions.RejectionKind
	}{
		{
			name:      "missing date wins over everything",
			candidate: domain.ContributionInput{Type: domain.Mandatory, AmountText: "-1", Reference: "DUP"},
			want:      contributions.MissingField,
		},
		{
			name:      "missing type",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-01-12")), AmountText: "10"},
			want:      contributions.MissingField,
		},
		{
			name:      "unknown type",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-01-12")), Type: "employer", AmountText: "10"},
			want:      contributions.MissingField,
		},
		{
			name:      "bad amount before future date",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-03-01")), Type: domain.Voluntary, AmountText: "abc"},
			want:      contributions.InvalidAmount,
		},
		{
			name:      "future date before monthly rule",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-02-01")), Type: domain.Mandatory, AmountText: "10", Reference: "DUP"},
			want:      contributions.FutureDate,
		},
		{
			name:      "monthly rule before reference",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-01-20")), Type: domain.Mandatory, AmountText: "10", Reference: "DUP"},
			want:      contributions.DuplicateMandatoryMonth,
		},
		{
			name:      "reference",
			candidate: domain.ContributionInput{Date: datePtr(day("2025-01-20")), Type: domain.Voluntary, AmountText: "10", Reference: "DUP"},
			want:      contributions.DuplicateReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := contributions.Validate(tt.candidate, existing, now)
			requireRejected(t, result, tt.want)
		})
	}
}

func TestValidate_InvalidAmounts(t *testing.T) {
	now := day("2025-01-31")
	zero := decimal.Zero
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name      string
		candidate domain.ContributionInput
	}{
		{name: "absent", candidate: domain.ContributionInput{}},
		{name: "zero text", candidate: domain.ContributionInput{AmountText: "0.00"}},
		{name: "negative text", candidate: domain.ContributionInput{AmountText: "-10"}},
		{name: "three decimals", candidate: domain.ContributionInput{AmountText: "10.001"}},
		{name: "not numeric", candidate: domain.ContributionInput{AmountText: "ten"}},
		{name: "too many integer digits", candidate: domain.ContributionInput{AmountText: "123456789012345678.5"}},
		{name: "zero numeric", candidate: domain.ContributionInput{Amount: &zero}},
		{name: "negative numeric", candidate: domain.ContributionInput{Amount: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := tt.candidate
			candidate.Date = datePtr(day("2025-01-10"))
			candidate.Type = domain.Voluntary

			result := contributions.Validate(candidate, nil, now)

			requireRejected(t, result, contributions.InvalidAmount)
			assert.True(t, errors.Is(result.Err(), apperrors.ErrValidation))
		})
	}
}

func TestValidate_DoesNotMutateExisting(t *testing.T) {
	existing := []domain.Contribution{stored("1", day("2025-01-10"), domain.Mandatory, 25000)}
	snapshot := append([]domain.Contribution(nil), existing...)

	_ = contributions.Validate(input(day("2025-01-25"), domain.Mandatory, "1"), existing, day("2025-02-01"))
	_ = contributions.Validate(input(day("2025-01-25"), domain.Voluntary, "1"), existing, day("2025-02-01"))

	assert.Equal(t, snapshot, existing)
}
