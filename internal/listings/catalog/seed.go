package catalog

import "pgstay/pkg/model"

const unsplash = "https://images.unsplash.com/"

func photo(id string) string {
	return unsplash + id + "?w=600&h=400&fit=crop"
}

// Seed returns the default Bangalore catalog used when the listing store is empty.
func Seed() []*model.Listing {
	return []*model.Listing{
		{
			ID:          "1",
			Name:        "Sunshine Boys PG",
			Address:     "Koramangala, Bangalore",
			Latitude:    12.9352,
			Longitude:   77.6245,
			Rating:      4.5,
			ReviewCount: 128,
			Rent:        8500,
			Deposit:     17000,
			Gender:      model.GenderBoys,
			Food:        model.FoodVeg,
			Images: []string{
				photo("photo-1522708323590-d24dbb6b0267"),
				photo("photo-1502672260266-1c1ef2d93688"),
				photo("photo-1560448204-e02f11c3d0e2"),
			},
			Amenities:     []string{"wifi", "ac", "laundry", "power_backup"},
			Verified:      true,
			Distance:      1.2,
			OwnerPhone:    "+919876543210",
			OwnerWhatsApp: "+919876543210",
			Rules:         []string{"No smoking", "Entry before 10 PM", "No loud music after 11 PM"},
			Description:   "Comfortable and well-maintained PG with all modern amenities. Perfect for working professionals and students.",
			Rooms: []model.Room{
				{ID: "1-single", Name: "Single Room", Description: "Private room with attached bathroom", Sleeps: 1, BathroomType: model.BathroomPrivate, Rent: 12000, Deposit: 24000, Available: 2},
				{ID: "1-double", Name: "Double Sharing", Description: "Shared room for two with common bathroom", Sleeps: 2, BathroomType: model.BathroomShared, Rent: 8500, Deposit: 17000, Available: 4, IsPopular: true},
				{ID: "1-triple", Name: "Triple Sharing", Description: "Budget room for three", Sleeps: 3, BathroomType: model.BathroomShared, Rent: 6500, Deposit: 13000, Available: 3},
			},
		},
		{
			ID:          "2",
			Name:        "Green Valley Girls Hostel",
			Address:     "HSR Layout, Bangalore",
			Latitude:    12.9116,
			Longitude:   77.6389,
			Rating:      4.8,
			ReviewCount: 256,
			Rent:        12000,
			Deposit:     24000,
			Gender:      model.GenderGirls,
			Food:        model.FoodBoth,
			Images: []string{
				photo("photo-1493809842364-78817add7ffb"),
				photo("photo-1536376072261-38c75010e6c9"),
				photo("photo-1505693416388-ac5ce068fe85"),
			},
			Amenities:     []string{"wifi", "ac", "laundry", "parking", "power_backup"},
			Verified:      true,
			Distance:      2.5,
			OwnerPhone:    "+919876543211",
			OwnerWhatsApp: "+919876543211",
			Rules:         []string{"No male visitors after 8 PM", "Entry before 9:30 PM", "Maintain cleanliness"},
			Description:   "Premium girls hostel with 24/7 security, homely food, and spacious rooms. Ideal for working women.",
			Rooms: []model.Room{
				{ID: "2-single", Name: "Single Room", Sleeps: 1, BathroomType: model.BathroomPrivate, Rent: 15000, Deposit: 30000, Available: 1},
				{ID: "2-double", Name: "Double Sharing", Sleeps: 2, BathroomType: model.BathroomShared, Rent: 12000, Deposit: 24000, Available: 5, IsPopular: true},
			},
		},
		{
			ID:          "3",
			Name:        "Urban Co-Living Space",
			Address:     "Indiranagar, Bangalore",
			Latitude:    12.9784,
			Longitude:   77.6408,
			Rating:      4.3,
			ReviewCount: 89,
			Rent:        15000,
			Deposit:     30000,
			Gender:      model.GenderCoLiving,
			Food:        model.FoodVeg,
			Images: []string{
				photo("photo-1600596542815-ffad4c1539a9"),
				photo("photo-1600585154340-be6161a56a0c"),
				photo("photo-1600607687939-ce8a6c25118c"),
			},
			Amenities:     []string{"wifi", "ac", "laundry", "parking", "power_backup", "gym"},
			Verified:      true,
			Distance:      0.8,
			OwnerPhone:    "+919876543212",
			OwnerWhatsApp: "+919876543212",
			Rules:         []string{"No smoking inside", "Respect quiet hours", "Clean common areas after use"},
			Description:   "Modern co-living space with community events, coworking area, and premium amenities.",
		},
		{
			ID:          "4",
			Name:        "Budget Boys Stay",
			Address:     "BTM Layout, Bangalore",
			Latitude:    12.9166,
			Longitude:   77.6101,
			Rating:      3.9,
			ReviewCount: 45,
			Rent:        6000,
			Deposit:     12000,
			Gender:      model.GenderBoys,
			Food:        model.FoodNonVeg,
			Images: []string{
				photo("photo-1512918728675-ed5a9ecdebfd"),
				photo("photo-1523192193543-6e7296d960e4"),
			},
			Amenities:     []string{"wifi", "power_backup"},
			Verified:      false,
			Distance:      3.2,
			OwnerPhone:    "+919876543213",
			OwnerWhatsApp: "+919876543213",
			Rules:         []string{"No alcohol", "Maintain silence after 11 PM"},
			Description:   "Affordable accommodation for students and freshers. Basic amenities at a budget price.",
		},
		{
			ID:          "5",
			Name:        "Lakshmi Ladies PG",
			Address:     "Marathahalli, Bangalore",
			Latitude:    12.9591,
			Longitude:   77.6974,
			Rating:      4.6,
			ReviewCount: 178,
			Rent:        9500,
			Deposit:     19000,
			Gender:      model.GenderGirls,
			Food:        model.FoodVeg,
			Images: []string{
				photo("photo-1595526114035-0d45ed16cfbf"),
				photo("photo-1598928506311-c55ez89a2cc8"),
				photo("photo-1584622650111-993a426fbf0a"),
			},
			Amenities:     []string{"wifi", "laundry", "power_backup"},
			Verified:      true,
			Distance:      4.1,
			OwnerPhone:    "+919876543214",
			OwnerWhatsApp: "+919876543214",
			Rules:         []string{"Strict 9 PM curfew", "No overnight guests", "Weekly room inspection"},
			Description:   "Safe and secure ladies PG with homely atmosphere and delicious vegetarian food.",
		},
		{
			ID:          "6",
			Name:        "Elite Co-Living Hub",
			Address:     "Whitefield, Bangalore",
			Latitude:    12.9698,
			Longitude:   77.7500,
			Rating:      4.7,
			ReviewCount: 312,
			Rent:        18000,
			Deposit:     36000,
			Gender:      model.GenderCoLiving,
			Food:        model.FoodBoth,
			Images: []string{
				photo("photo-1600210492486-724fe5c67fb0"),
				photo("photo-1600573472550-8090b5e0745e"),
				photo("photo-1600566753190-17f0baa2a6c3"),
			},
			Amenities:     []string{"wifi", "ac", "laundry", "parking", "power_backup", "gym", "pool"},
			Verified:      true,
			Distance:      5.5,
			OwnerPhone:    "+919876543215",
			OwnerWhatsApp: "+919876543215",
			Rules:         []string{"Noise curfew after 10 PM", "Guests allowed with prior notice", "No pets"},
			Description:   "Luxury co-living with swimming pool, gym, and community lounge. All-inclusive rent.",
		},
	}
}
