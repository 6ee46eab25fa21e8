package domain

import "strings"

// Permission is a namespaced codename, e.g. "store.view_order".
type Permission string

const PermissionNamespace = "store"

const (
	PermAddGood    Permission = "store.add_good"
	PermChangeGood Permission = "store.change_good"
	PermDeleteGood Permission = "store.delete_good"
	PermViewGood   Permission = "store.view_good"

	PermAddOffer    Permission = "store.add_offer"
	PermChangeOffer Permission = "store.change_offer"
	PermDeleteOffer Permission = "store.delete_offer"
	PermViewOffer   Permission = "store.view_offer"

	PermAddPurchase    Permission = "store.add_purchase"
	PermChangePurchase Permission = "store.change_purchase"
	PermDeletePurchase Permission = "store.delete_purchase"
	PermViewPurchase   Permission = "store.view_purchase"
	PermViewMyPurchase Permission = "store.view_my_purchase"

	PermAddOrder        Permission = "store.add_order"
	PermChangeOrder     Permission = "store.change_order"
	PermDeleteOrder     Permission = "store.delete_order"
	PermViewOrder       Permission = "store.view_order"
	PermViewMyOrder     Permission = "store.view_my_order"
	PermModerateMyOrder Permission = "store.moderate_my_order"

	PermAddSettings    Permission = "store.add_settings"
	PermChangeSettings Permission = "store.change_settings"
	PermDeleteSettings Permission = "store.delete_settings"
	PermViewSettings   Permission = "store.view_settings"
)

// Codename strips the namespace: "store.view_order" -> "view_order".
func (p Permission) Codename() string {
	return strings.TrimPrefix(string(p), PermissionNamespace+".")
}

const (
	GroupModerators      = "Moderators"
	GroupBuyers          = "Buyers"
	GroupAnonymousBuyers = "AnonymousBuyers"
)

func AllPermissions() []Permission {
	return []Permission{
		PermAddGood, PermChangeGood, PermDeleteGood, PermViewGood,
		PermAddOffer, PermChangeOffer, PermDeleteOffer, PermViewOffer,
		PermAddPurchase, PermChangePurchase, PermDeletePurchase, PermViewPurchase, PermViewMyPurchase,
		PermAddOrder, PermChangeOrder, PermDeleteOrder, PermViewOrder, PermViewMyOrder, PermModerateMyOrder,
		PermAddSettings, PermChangeSettings, PermDeleteSettings, PermViewSettings,
	}
}

func buyerPermissions() []Permission {
	return []Permission{PermViewGood, PermViewOffer, PermViewMyPurchase, PermViewMyOrder, PermModerateMyOrder}
}

// DefaultGroups is the group membership seeded at startup.
func DefaultGroups() map[string][]Permission {
	return map[string][]Permission{
		GroupModerators:      AllPermissions(),
		GroupBuyers:          buyerPermissions(),
		GroupAnonymousBuyers: buyerPermissions(),
	}
}
