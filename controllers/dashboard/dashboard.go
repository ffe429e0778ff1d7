package dashboardControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/provabook/provabook-api/models"
	"gorm.io/gorm"
)

// Summary is the role-scoped dashboard payload.
type Summary struct {
	UpcomingOrders int64      `json:"upcoming_orders"`
	RunningOrders  int64      `json:"running_orders"`
	ArchivedOrders int64      `json:"archived_orders"`
	OpenIncidents  int64      `json:"open_incidents"`
	PendingSamples int64      `json:"pending_samples"`
	RecentActivity []Activity `json:"recent_activity"`
}

// Activity is one rendered audit entry.
type Activity struct {
	Description string `json:"description"`
	ActorName   string `json:"actor_name"`
	OrderNumber string `json:"order_number"`
	CreatedAt   string `json:"created_at"`
}

// activityTemplates maps audit action codes to display templates. The
// placeholders are actor name and order number, in that order.
var activityTemplates = map[string]string{
	models.ActionOrderCreated:    "%s created order %s",
	models.ActionOrderUpdated:    "%s updated order %s",
	models.ActionOrderDeleted:    "%s deleted order %s",
	models.ActionApprovalChanged: "%s changed an approval on order %s",
	models.ActionStageChanged:    "%s moved order %s to a new stage",
	models.ActionSampleCreated:   "%s added a sample to order %s",
	models.ActionSampleUpdated:   "%s updated a sample on order %s",
	models.ActionPICreated:       "%s issued a proforma invoice for order %s",
	models.ActionLCCreated:       "%s recorded a letter of credit for order %s",
	models.ActionShipmentCreated: "%s booked a shipment for order %s",
	models.ActionProductionAdded: "%s recorded production output on order %s",
	models.ActionIncidentRaised:  "%s raised an incident on order %s",
	models.ActionDocumentAdded:   "%s attached a document to order %s",
	models.ActionDocumentRemoved: "%s removed a document from order %s",
}

// DescribeActivity renders an audit entry through the template table.
// Unrecognized action codes pass through verbatim.
func DescribeActivity(entry models.AuditLog) string {
	tmpl, ok := activityTemplates[entry.Action]
	if !ok {
		return entry.Action
	}
	actor := entry.ActorName
	if actor == "" {
		actor = "Someone"
	}
	return fmt.Sprintf(tmpl, actor, entry.OrderNumber)
}

// BuildSummary assembles the dashboard for one caller. Managers and admins
// see company-wide numbers; merchandisers only their own orders, matched on
// the merchandiser_id column rather than the metadata JSON.
func BuildSummary(db *gorm.DB, role models.Role, userID string) (Summary, error) {
	var s Summary

	orders := func() *gorm.DB {
		q := db.Model(&models.Order{})
		if role == models.RoleMerchandiser {
			q = q.Where("merchandiser_id = ?", userID)
		}
		return q
	}

	if err := orders().Where("category = ?", models.CategoryUpcoming).Count(&s.UpcomingOrders).Error; err != nil {
		return s, err
	}
	if err := orders().Where("category = ?", models.CategoryRunning).Count(&s.RunningOrders).Error; err != nil {
		return s, err
	}
	if err := orders().Where("category = ?", models.CategoryArchived).Count(&s.ArchivedOrders).Error; err != nil {
		return s, err
	}

	incidents := db.Model(&models.Incident{}).
		Joins("JOIN orders ON orders.id = incidents.order_id").
		Where("incidents.status IN ?", []models.IncidentStatus{models.IncidentStatusOpen, models.IncidentStatusInProgress})
	samples := db.Model(&models.Sample{}).
		Joins("JOIN orders ON orders.id = samples.order_id").
		Where("samples.status = ? AND samples.resubmission_plan_set = ?", models.SampleStatusRejected, false)
	if role == models.RoleMerchandiser {
		incidents = incidents.Where("orders.merchandiser_id = ?", userID)
		samples = samples.Where("orders.merchandiser_id = ?", userID)
	}
	if err := incidents.Count(&s.OpenIncidents).Error; err != nil {
		return s, err
	}
	if err := samples.Count(&s.PendingSamples).Error; err != nil {
		return s, err
	}

	activity := db.Where("order_number <> ''").Order("created_at DESC").Limit(10)
	if role == models.RoleMerchandiser {
		activity = activity.Where("merchandiser_id = ?", userID)
	}
	var entries []models.AuditLog
	if err := activity.Find(&entries).Error; err != nil {
		return s, err
	}

	s.RecentActivity = make([]Activity, 0, len(entries))
	for _, e := range entries {
		s.RecentActivity = append(s.RecentActivity, Activity{
			Description: DescribeActivity(e),
			ActorName:   e.ActorName,
			OrderNumber: e.OrderNumber,
			CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return s, nil
}

// GET /dashboard/summary
func GetSummaryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, _ := c.Get("role")
		roleStr, _ := roleVal.(string)
		userVal, _ := c.Get("user_id")
		userID, _ := userVal.(string)

		summary, err := BuildSummary(db, models.Role(roleStr), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
