package deployments

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsValidRequest(t *testing.T) {
	warnings, err := validRequest().Validate(testCatalog())

	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateDateRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *DeploymentRequest)
		problem string
	}{
		{
			name:    "completion before deployment",
			mutate:  func(r *DeploymentRequest) { r.CompletionDate = "2024-09-04"; r.PickUpDate = "" },
			problem: "completion date cannot be before the deployment date",
		},
		{
			name:    "drop off on deployment day",
			mutate:  func(r *DeploymentRequest) { r.DropOffDate = r.DeploymentDate },
			problem: "drop off date must be before the deployment date",
		},
		{
			name:    "pick up on completion day",
			mutate:  func(r *DeploymentRequest) { r.PickUpDate = r.CompletionDate },
			problem: "pick up date must be after the completion date",
		},
		{
			name:    "unparseable deployment date",
			mutate:  func(r *DeploymentRequest) { r.DeploymentDate = "09/05/2024" },
			problem: "deployment date must be a YYYY-MM-DD date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.Validate(testCatalog())

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Problems, tt.problem)
		})
	}
}

func TestValidateSameDayDeploymentIsAllowed(t *testing.T) {
	req := validRequest()
	req.CompletionDate = req.DeploymentDate
	req.PickUpDate = ""

	_, err := req.Validate(testCatalog())

	assert.NoError(t, err)
}

func TestValidateItems(t *testing.T) {
	req := validRequest()
	req.Items = []DeployedItemRequest{
		{Item: "Barricades", Yard: "Northwest Yard", Quantity: 10},
		{Item: "Barricades", Yard: "Main Yard", Quantity: 5},
		{Item: "Flux Capacitor", Yard: "Main Yard", Quantity: 1},
		{Item: "Pexco", Yard: "Main Yard", Quantity: 0},
	}

	warnings, err := req.Validate(testCatalog())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		`item 3: "Flux Capacitor" is not in the catalog`,
		"item 4: quantity must be greater than zero",
	}, validationErr.Problems)
	assert.Equal(t, []string{
		"item 2: Barricades is not stocked at Main Yard",
		"item 4: Pexco is not stocked at Main Yard",
	}, warnings)
}

func TestValidateItemCount(t *testing.T) {
	req := validRequest()
	req.Items = nil

	_, err := req.Validate(testCatalog())
	assert.ErrorContains(t, err, "at least one item is required")

	for i := 0; i <= MaxDeploymentItems; i++ {
		req.Items = append(req.Items, DeployedItemRequest{Item: "Barricades", Yard: "Northwest Yard", Quantity: 1})
	}

	_, err = req.Validate(testCatalog())
	assert.ErrorContains(t, err, "cannot have more than 500 items")
}

func TestToDeployment(t *testing.T) {
	deployment := validRequest().ToDeployment()

	assert.Equal(t, "PM-1004", deployment.ID)
	require.NotNil(t, deployment.Location)
	assert.Equal(t, "118 Ave", deployment.Location.Street)
	assert.Len(t, deployment.Items, 1)
	assert.Zero(t, deployment.TotalDays)
	assert.False(t, deployment.Synced)
}

func TestToDeploymentDropsPartialLocation(t *testing.T) {
	req := validRequest()
	req.Location = &LocationRequest{Street: "118 Ave", Avenue: "  "}

	assert.Nil(t, req.ToDeployment().Location)
}

func TestBindingRules(t *testing.T) {
	require.NoError(t, RegisterValidators())

	tests := []struct {
		name   string
		mutate func(r *DeploymentRequest)
		valid  bool
	}{
		{name: "valid", mutate: func(r *DeploymentRequest) {}, valid: true},
		{name: "punctuation allowed", mutate: func(r *DeploymentRequest) { r.Event = "St. Albert's Parade, Day-1" }, valid: true},
		{name: "blank id", mutate: func(r *DeploymentRequest) { r.ID = "   " }},
		{name: "id too long", mutate: func(r *DeploymentRequest) { r.ID = strings.Repeat("P", 21) }},
		{name: "charge out markup", mutate: func(r *DeploymentRequest) { r.ChargeOut = "<script>" }},
		{name: "event too long", mutate: func(r *DeploymentRequest) { r.Event = strings.Repeat("e", 151) }},
		{name: "street braces", mutate: func(r *DeploymentRequest) { r.Location.Street = "{118}" }},
		{name: "bad date format", mutate: func(r *DeploymentRequest) { r.CompletionDate = "2024-9-10" }},
		{name: "no items", mutate: func(r *DeploymentRequest) { r.Items = []DeployedItemRequest{} }},
		{name: "negative quantity", mutate: func(r *DeploymentRequest) { r.Items[0].Quantity = -1 }},
		{name: "empty optional dates", mutate: func(r *DeploymentRequest) { r.DropOffDate = ""; r.PickUpDate = "" }, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := binding.Validator.ValidateStruct(&req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
