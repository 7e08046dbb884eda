package intent

// #region imports
import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// #endregion imports

// #region cascade-tests

func TestClassifyFallback(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{
			name:    "affordability hardship",
			message: "hey can't afford the $13/month care+ anymore, need to cancel",
			want:    IntentCancellation,
		},
		{
			name:    "product issue with cancel wins over technical",
			message: "this phone keeps overheating, want to return it and cancel everything",
			want:    IntentCancellation,
		},
		{
			name:    "get rid of subscription",
			message: "paying for care+ but never used it, maybe just get rid of it?",
			want:    IntentCancellation,
		},
		{
			name:    "pure technical issue",
			message: "my phone won't charge anymore, tried different cables",
			want:    IntentTechnical,
		},
		{
			name:    "billing question without cancellation",
			message: "got charged $15.99 but thought care+ was $12.99, what's the extra?",
			want:    IntentBilling,
		},
		{
			name:    "payment plan request is cancellation intent",
			message: "can I get a custom payment plan for my subscription?",
			want:    IntentCancellation,
		},
		{
			name:    "affordability excludes billing even with charge words",
			message: "I was charged again but I can't afford this",
			want:    IntentCancellation,
		},
		{
			name:    "billing arrangements outrank billing",
			message: "I need custom billing arrangements on my account",
			want:    IntentCancellation,
		},
		{
			name:    "overheating with cancel is not technical",
			message: "phone overheats, cancel my plan",
			want:    IntentCancellation,
		},
		{
			name:    "greeting",
			message: "hi there",
			want:    IntentGeneral,
		},
		{
			name:    "empty message",
			message: "",
			want:    IntentGeneral,
		},
		{
			name:    "case insensitive",
			message: "I WANT TO CANCEL",
			want:    IntentCancellation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFallback(tt.message))
		})
	}
}

func TestRouteFor(t *testing.T) {
	assert.Equal(t, RouteRetention, RouteFor(IntentCancellation))
	assert.Equal(t, RouteTechnical, RouteFor(IntentTechnical))
	assert.Equal(t, RouteBilling, RouteFor(IntentBilling))
	assert.Equal(t, RouteNone, RouteFor(IntentGeneral))
	assert.Equal(t, RouteNone, RouteFor(Intent("bogus")))
}

// #endregion cascade-tests
