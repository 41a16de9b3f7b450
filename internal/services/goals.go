package services

import (
	"github.com/dmitrijs2005/finhive/internal/localstore"
	"github.com/dmitrijs2005/finhive/internal/logging"
	"github.com/dmitrijs2005/finhive/internal/mirror"
	"github.com/dmitrijs2005/finhive/internal/models"
)

// GoalService reads savings goals. Goals are created elsewhere; locally
// they are only a cache of the mirror.
type GoalService struct {
	*ownedCollection[models.SavingsGoal, *models.SavingsGoal]
}

func NewGoalService(db *localstore.DB, m mirror.Goals, log logging.Logger) *GoalService {
	return &GoalService{
		ownedCollection: newOwned[models.SavingsGoal, *models.SavingsGoal](db, models.KeyGoals, remoteOps[models.SavingsGoal]{
			selectAll: m.SelectGoals,
		}, log),
	}
}
