package googlesheets

import "signyard/pkg/models"

// Header lists the spreadsheet columns written by DeploymentRows.
var Header = []interface{}{
	"Deployment ID", "Event", "Charge Out", "Deployment Date", "Completion Date",
	"Drop Off Date", "Pick Up Date", "Total Days", "Street", "Avenue",
	"Item", "Yard", "Quantity",
}

// DeploymentRows flattens a deployment into one sheet row per deployed item.
func DeploymentRows(deployment models.Deployment) [][]interface{} {
	var street, avenue string
	if deployment.Location != nil {
		street = deployment.Location.Street
		avenue = deployment.Location.Avenue
	}

	rows := make([][]interface{}, 0, len(deployment.Items))
	for _, line := range deployment.Items {
		rows = append(rows, []interface{}{
			deployment.ID,
			deployment.Event,
			deployment.ChargeOut,
			deployment.DeploymentDate,
			deployment.CompletionDate,
			deployment.DropOffDate,
			deployment.PickUpDate,
			deployment.TotalDays,
			street,
			avenue,
			line.Item,
			line.Yard,
			line.Quantity,
		})
	}

	return rows
}
