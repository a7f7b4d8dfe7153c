package catalog

import (
	"github.com/shopfusion/backend/internal/models"
	"github.com/shopfusion/backend/internal/repo"
)

type Filters struct {
	Status     string
	SellerID   uint
	CategoryID uint
}

// Visibility maps (role, requester, filters) to the listing predicate. It is
// a pure function: client-supplied filters never widen what a role may see,
// and nothing mutates the incoming filters.
//
// guest/customer  only approved; a supplied status is overridden.
// seller          approved from anyone plus own pending/rejected; asking for
//                 pending or rejected narrows to own rows; asking for
//                 approved behaves exactly like a customer asking.
// admin           no forced restriction; filters apply verbatim.
func Visibility(role string, requesterID uint, f Filters) repo.ProductQuery {
	q := repo.ProductQuery{
		SellerID:   f.SellerID,
		CategoryID: f.CategoryID,
	}

	switch role {
	case models.RoleAdmin:
		if f.Status != "" && f.Status != "all" {
			q.Statuses = []string{f.Status}
		}

	case models.RoleSeller:
		switch f.Status {
		case "", "all":
			q.Statuses = []string{models.ModerationApproved}
			q.OwnerID = requesterID
			q.OwnerStatuses = []string{models.ModerationPending, models.ModerationRejected}
		case models.ModerationPending, models.ModerationRejected:
			q.OwnerID = requesterID
			q.OwnerStatuses = []string{f.Status}
		default:
			q.Statuses = []string{models.ModerationApproved}
		}

	default:
		q.Statuses = []string{models.ModerationApproved}
	}

	return q
}
