package deployments

import (
	"fmt"
	"strings"
	"time"

	"signyard/pkg/models"
)

const MaxDeploymentItems = 500

type LocationRequest struct {
	Street string `json:"street" binding:"omitempty,max=100,safetext"`
	Avenue string `json:"avenue" binding:"omitempty,max=100,safetext"`
}

type DeployedItemRequest struct {
	Item     string `json:"item" binding:"required,notblank"`
	Yard     string `json:"yard" binding:"required,notblank"`
	Quantity int    `json:"quantity" binding:"gt=0"`
}

// DeploymentRequest is the create/replace payload. Total days and the
// synced flag are always derived server side.
type DeploymentRequest struct {
	ID             string                `json:"id" binding:"required,notblank,max=20"`
	ChargeOut      string                `json:"charge_out" binding:"required,notblank,max=100,safetext"`
	Event          string                `json:"event" binding:"required,notblank,max=150,safetext"`
	DeploymentDate string                `json:"deployment_date" binding:"required,datetime=2006-01-02"`
	CompletionDate string                `json:"completion_date" binding:"required,datetime=2006-01-02"`
	DropOffDate    string                `json:"drop_off_date" binding:"omitempty,datetime=2006-01-02"`
	PickUpDate     string                `json:"pick_up_date" binding:"omitempty,datetime=2006-01-02"`
	Location       *LocationRequest      `json:"location"`
	Items          []DeployedItemRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

// Validate checks the rules that span fields or need the catalog. Lines
// drawing from a yard that does not stock the item are allowed and reported
// as warnings.
func (r DeploymentRequest) Validate(catalog []models.InventoryItem) ([]string, error) {
	problems := &ValidationError{}
	var warnings []string

	deploymentDate, errDeployment := time.Parse(models.DateLayout, r.DeploymentDate)
	completionDate, errCompletion := time.Parse(models.DateLayout, r.CompletionDate)
	if errDeployment != nil {
		problems.add("deployment date must be a YYYY-MM-DD date")
	}
	if errCompletion != nil {
		problems.add("completion date must be a YYYY-MM-DD date")
	}

	if errDeployment == nil && errCompletion == nil && completionDate.Before(deploymentDate) {
		problems.add("completion date cannot be before the deployment date")
	}

	if r.DropOffDate != "" && errDeployment == nil {
		dropOff, err := time.Parse(models.DateLayout, r.DropOffDate)
		if err != nil {
			problems.add("drop off date must be a YYYY-MM-DD date")
		} else if !dropOff.Before(deploymentDate) {
			problems.add("drop off date must be before the deployment date")
		}
	}

	if r.PickUpDate != "" && errCompletion == nil {
		pickUp, err := time.Parse(models.DateLayout, r.PickUpDate)
		if err != nil {
			problems.add("pick up date must be a YYYY-MM-DD date")
		} else if !pickUp.After(completionDate) {
			problems.add("pick up date must be after the completion date")
		}
	}

	if len(r.Items) == 0 {
		problems.add("at least one item is required")
	}
	if len(r.Items) > MaxDeploymentItems {
		problems.add(fmt.Sprintf("a deployment cannot have more than %d items", MaxDeploymentItems))
	}

	byName := make(map[string]models.InventoryItem, len(catalog))
	for _, item := range catalog {
		byName[item.Item] = item
	}

	for i, line := range r.Items {
		if line.Quantity <= 0 {
			problems.add(fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
		}

		item, ok := byName[line.Item]
		if !ok {
			problems.add(fmt.Sprintf("item %d: %q is not in the catalog", i+1, line.Item))
			continue
		}
		if !item.StocksYard(line.Yard) {
			warnings = append(warnings, fmt.Sprintf("item %d: %s is not stocked at %s", i+1, line.Item, line.Yard))
		}
	}

	return warnings, problems.orNil()
}

// ToDeployment maps the request onto a deployment. The location is kept
// only when both street and avenue are given.
func (r DeploymentRequest) ToDeployment() models.Deployment {
	deployment := models.Deployment{
		ID:             strings.TrimSpace(r.ID),
		ChargeOut:      strings.TrimSpace(r.ChargeOut),
		Event:          strings.TrimSpace(r.Event),
		DeploymentDate: r.DeploymentDate,
		CompletionDate: r.CompletionDate,
		DropOffDate:    r.DropOffDate,
		PickUpDate:     r.PickUpDate,
		Items:          make([]models.DeployedItem, 0, len(r.Items)),
	}

	if r.Location != nil {
		street := strings.TrimSpace(r.Location.Street)
		avenue := strings.TrimSpace(r.Location.Avenue)
		if street != "" && avenue != "" {
			deployment.Location = &models.Location{Street: street, Avenue: avenue}
		}
	}

	for _, line := range r.Items {
		deployment.Items = append(deployment.Items, models.DeployedItem{
			Item:     line.Item,
			Yard:     line.Yard,
			Quantity: line.Quantity,
		})
	}

	return deployment
}
