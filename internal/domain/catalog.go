package domain

// SeedCatalog returns the stock catalog loaded once at start-up.
// Prices and daily changes are in cents.
func SeedCatalog() []Stock {
	return []Stock{
		// Technology
		{Symbol: "TECH", Name: "Tech Innovators Inc.", Sector: "Technology", Price: 125075, DailyChange: 4550},
		{Symbol: "SOFT", Name: "SoftTech Ltd.", Sector: "Technology", Price: 113040, DailyChange: -2260},
		{Symbol: "CLOUD", Name: "CloudNet Systems", Sector: "Technology", Price: 98075, DailyChange: 3350},

		// Automotive
		{Symbol: "AUTO", Name: "Auto Dynamics Co.", Sector: "Automotive", Price: 85050, DailyChange: -1700},
		{Symbol: "EVM", Name: "EV Motors Inc.", Sector: "Automotive", Price: 120050, DailyChange: 4800},
		{Symbol: "TRUCK", Name: "Truck Solutions Co.", Sector: "Automotive", Price: 78030, DailyChange: 2050},

		// Healthcare
		{Symbol: "PHARMA", Name: "Pharma Health Solutions", Sector: "Healthcare", Price: 120000, DailyChange: 3600},
		{Symbol: "BIO", Name: "BioGen Pharmaceuticals", Sector: "Healthcare", Price: 150000, DailyChange: -4500},
		{Symbol: "MED", Name: "MedEquip Corp.", Sector: "Healthcare", Price: 145060, DailyChange: 5000},

		// Consumer Goods
		{Symbol: "FOOD", Name: "Global Foods Corp.", Sector: "Consumer Goods", Price: 55020, DailyChange: 2000},
		{Symbol: "BEV", Name: "Beverage World Ltd.", Sector: "Consumer Goods", Price: 68990, DailyChange: -2500},
		{Symbol: "CLOTH", Name: "ClothMart Inc.", Sector: "Consumer Goods", Price: 40225, DailyChange: 1200},

		// Finance
		{Symbol: "BANK", Name: "National Bank Corp.", Sector: "Finance", Price: 180000, DailyChange: 5500},
		{Symbol: "INV", Name: "Investment Partners", Sector: "Finance", Price: 95050, DailyChange: -3000},
		{Symbol: "INSURE", Name: "SecureLife Insurance", Sector: "Finance", Price: 95000, DailyChange: 2000},

		// Energy
		{Symbol: "OIL", Name: "Global Oil Co.", Sector: "Energy", Price: 65750, DailyChange: 1850},
		{Symbol: "SOLAR", Name: "Solar Future Inc.", Sector: "Energy", Price: 120900, DailyChange: 5000},
		{Symbol: "WIND", Name: "WindPower Ltd.", Sector: "Energy", Price: 88400, DailyChange: -2000},

		// Telecommunications
		{Symbol: "TEL", Name: "TeleConnect Inc.", Sector: "Telecommunications", Price: 55000, DailyChange: -1000},
		{Symbol: "MOBILE", Name: "MobileNet Corp.", Sector: "Telecommunications", Price: 70200, DailyChange: 2200},
		{Symbol: "FIBER", Name: "FiberLink Ltd.", Sector: "Telecommunications", Price: 95550, DailyChange: 3000},

		// Real Estate
		{Symbol: "PROP", Name: "Property Developers Inc.", Sector: "Real Estate", Price: 80400, DailyChange: -2500},
		{Symbol: "HOME", Name: "HomeBuilders Co.", Sector: "Real Estate", Price: 120900, DailyChange: 4000},
		{Symbol: "ESTATE", Name: "Urban Estate Ltd.", Sector: "Real Estate", Price: 150600, DailyChange: 5000},

		// Utilities
		{Symbol: "WATER", Name: "Aqua Utilities", Sector: "Utilities", Price: 60750, DailyChange: 1500},
		{Symbol: "ELECT", Name: "Electric Grid Corp.", Sector: "Utilities", Price: 100500, DailyChange: -3500},
		{Symbol: "GAS", Name: "GasFlow Ltd.", Sector: "Utilities", Price: 88900, DailyChange: 2000},
	}
}
