package main

import "github.com/plus3/workbench/bill"

func defaultCatalog() *bill.Catalog {
	knife := &bill.ThingDef{DefName: "MeleeWeapon_Knife", Label: "knife", BaseMarketValue: 30, HasQuality: true, UseHitPoints: true}
	parka := &bill.ThingDef{DefName: "Apparel_Parka", Label: "parka", BaseMarketValue: 95, HasQuality: true, UseHitPoints: true}
	meal := &bill.ThingDef{DefName: "MealSimple", Label: "simple meal", BaseMarketValue: 15, UseHitPoints: true}
	steel := &bill.ThingDef{DefName: "Steel", Label: "steel", BaseMarketValue: 1.9, CountAsResource: true, UseHitPoints: true}
	slag := &bill.ThingDef{DefName: "ChunkSlagSteel", Label: "steel slag chunk", BaseMarketValue: 0}

	return bill.NewCatalog(
		&bill.RecipeDef{DefName: "Make_Knife", Label: "make knife", Products: []bill.Product{{Thing: knife, Count: 1}}},
		&bill.RecipeDef{DefName: "Make_Parka", Label: "make parka", Products: []bill.Product{{Thing: parka, Count: 1}}},
		&bill.RecipeDef{DefName: "CookMealSimple", Label: "cook simple meal", Products: []bill.Product{{Thing: meal, Count: 1}}},
		&bill.RecipeDef{DefName: "SmeltWeapon", Label: "smelt weapon", Products: []bill.Product{{Thing: steel, Count: 20}, {Thing: slag, Count: 1}}},
		&bill.RecipeDef{DefName: "BreakDownSlag", Label: "break down slag", Products: []bill.Product{{Thing: slag, Count: 1}}},
		&bill.RecipeDef{DefName: "CremateCorpse", Label: "cremate corpse"},
	)
}
