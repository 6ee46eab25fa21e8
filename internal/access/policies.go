package access

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

var (
	readActions  = []Action{ActionList, ActionRetrieve}
	writeActions = []Action{ActionCreate, ActionUpdate, ActionPartialUpdate}
	editActions  = []Action{ActionUpdate, ActionPartialUpdate}

	mutateActions = []Action{ActionCreate, ActionUpdate, ActionPartialUpdate, ActionDestroy}
)

var (
	moderateOffer    = AnyPerm(domain.PermAddOffer, domain.PermChangeOffer, domain.PermDeleteOffer)
	moderateOrder    = AnyPerm(domain.PermAddOrder, domain.PermChangeOrder, domain.PermDeleteOrder)
	moderateSettings = AnyPerm(domain.PermAddSettings, domain.PermChangeSettings, domain.PermDeleteSettings)
)

type Options struct {
	// AllowGoodDeletion lets holders of delete_good destroy goods, cascading into purchase history.
	AllowGoodDeletion bool
}

type Policies struct {
	Goods     *Policy
	Offers    *Policy
	Purchases *Policy
	Orders    *Policy
	MyOrders  *Policy
	Settings  *Policy
}

func NewPolicies(opts Options) Policies {
	return Policies{
		Goods: NewPolicy("good").
			Allow(HasPerm(domain.PermViewGood), readActions...).
			Allow(AnyPerm(domain.PermAddGood, domain.PermChangeGood), writeActions...).
			Allow(All(HasPerm(domain.PermDeleteGood), Flag(opts.AllowGoodDeletion)), ActionDestroy),

		Offers: NewPolicy("offer").
			Allow(HasPerm(domain.PermViewOffer), readActions...).
			Allow(moderateOffer, mutateActions...),

		// read-only
		Purchases: NewPolicy("purchase").
			Allow(AnyPerm(domain.PermViewPurchase, domain.PermViewMyPurchase), readActions...),

		// orders are placed and removed through the buyer endpoint only
		Orders: NewPolicy("order").
			Allow(HasPerm(domain.PermViewOrder), readActions...).
			Allow(moderateOrder, readActions...).
			Allow(AnyPerm(domain.PermViewMyOrder, domain.PermModerateMyOrder), readActions...).
			Allow(moderateOrder, editActions...).
			Allow(HasPerm(domain.PermModerateMyOrder), editActions...),

		MyOrders: NewPolicy("order").
			Allow(HasPerm(domain.PermViewMyOrder), readActions...).
			Allow(HasPerm(domain.PermModerateMyOrder), mutateActions...),

		Settings: NewPolicy("settings").
			Allow(HasPerm(domain.PermViewSettings), readActions...).
			Allow(moderateSettings, mutateActions...),
	}
}
