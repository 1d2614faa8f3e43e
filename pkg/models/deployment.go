package models

// DateLayout is the calendar-date format used for every deployment date.
const DateLayout = "2006-01-02"

type DeployedItem struct {
	Item     string `json:"item" yaml:"item" db:"item"`
	Yard     string `json:"yard" yaml:"yard" db:"yard"`
	Quantity int    `json:"quantity" yaml:"quantity" db:"quantity"`
}

type Location struct {
	Street string `json:"street" yaml:"street"`
	Avenue string `json:"avenue" yaml:"avenue"`
}

// Deployment is a drop-off of catalog items to an event or project.
// TotalDays is derived from DeploymentDate and CompletionDate when the
// deployment is saved and is never taken from client input. Version grows
// on every replace so a sync pass only flags the version it published.
type Deployment struct {
	ID             string         `json:"id" yaml:"id"`
	ChargeOut      string         `json:"charge_out" yaml:"charge_out"`
	Event          string         `json:"event" yaml:"event"`
	DeploymentDate string         `json:"deployment_date" yaml:"deployment_date"`
	CompletionDate string         `json:"completion_date" yaml:"completion_date"`
	DropOffDate    string         `json:"drop_off_date,omitempty" yaml:"drop_off_date"`
	PickUpDate     string         `json:"pick_up_date,omitempty" yaml:"pick_up_date"`
	TotalDays      int            `json:"total_days" yaml:"total_days"`
	Location       *Location      `json:"location,omitempty" yaml:"location"`
	Items          []DeployedItem `json:"items" yaml:"items"`
	Synced         bool           `json:"synced" yaml:"synced"`
	Version        int            `json:"version" yaml:"-"`
}

type FlatDeploymentRecord struct {
	ID             string  `db:"id"`
	ChargeOut      string  `db:"charge_out"`
	Event          string  `db:"event"`
	DeploymentDate string  `db:"deployment_date"`
	CompletionDate string  `db:"completion_date"`
	DropOffDate    *string `db:"drop_off_date"`
	PickUpDate     *string `db:"pick_up_date"`
	TotalDays      int     `db:"total_days"`
	Street         *string `db:"street"`
	Avenue         *string `db:"avenue"`
	Synced         bool    `db:"synced"`
	Version        int     `db:"version"`
}

type FlatDeployedItemRecord struct {
	DeploymentID string `db:"deployment_id"`
	Position     int    `db:"position"`
	Item         string `db:"item"`
	Yard         string `db:"yard"`
	Quantity     int    `db:"quantity"`
}
