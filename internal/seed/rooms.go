package seed

import "hostel-booking-backend/internal/model"

var images = []string{
	"https://customer-assets.emergentagent.com/job_hostel-booking-4/artifacts/mohc5zyn_WhatsApp%20Image%202026-01-16%20at%208.10.18%20PM.jpeg",
	"https://customer-assets.emergentagent.com/job_hostel-booking-4/artifacts/d91sll3v_WhatsApp%20Image%202026-01-16%20at%208.10.19%20PM%20%281%29.jpeg",
	"https://customer-assets.emergentagent.com/job_hostel-booking-4/artifacts/kdxuhpmm_WhatsApp%20Image%202026-01-16%20at%208.10.19%20PM%20%282%29.jpeg",
	"https://customer-assets.emergentagent.com/job_hostel-booking-4/artifacts/3stoe6m8_WhatsApp%20Image%202026-01-16%20at%208.10.19%20PM%20%283%29.jpeg",
	"https://customer-assets.emergentagent.com/job_hostel-booking-4/artifacts/u8725mp2_WhatsApp%20Image%202026-01-16%20at%208.10.19%20PM.jpeg",
}

var (
	singleAmenities = []string{"Single Bed", "Personal Wardrobe", "Study Desk", "Window View", "Key Lock", "Shared Kitchen Access", "Shared Bathroom"}
	sharedAmenities = []string{"Two Single Beds", "Shared Wardrobe", "Study Area", "Window View", "Key Lock", "Shared Kitchen Access", "Shared Bathroom"}
)

func pick(idx ...int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = images[n]
	}
	return out
}

// demoRooms is the catalogue loaded into an empty database.
func demoRooms() []model.Room {
	return []model.Room{
		{
			Name:               "Premium Single Room A",
			RoomType:           model.RoomTypeSingle,
			Price:              4700,
			SecurityDeposit:    300,
			Description:        "Spacious single occupancy room with a personal study area, wardrobe and a window with natural light, inside a secure gated compound.",
			Amenities:          singleAmenities,
			Images:             pick(0, 2, 3),
			AvailabilityStatus: model.StatusAvailable,
			TotalSlots:         1,
			AvailableSlots:     1,
		},
		{
			Name:               "Premium Single Room B",
			RoomType:           model.RoomTypeSingle,
			Price:              4700,
			SecurityDeposit:    300,
			Description:        "Well-ventilated single room with modern finishes in a quiet area close to the major universities.",
			Amenities:          singleAmenities,
			Images:             pick(2, 0, 4),
			AvailabilityStatus: model.StatusAlmostFull,
			TotalSlots:         1,
			AvailableSlots:     1,
		},
		{
			Name:               "Shared Room A",
			RoomType:           model.RoomTypeDouble,
			Price:              4500,
			SecurityDeposit:    300,
			Description:        "Affordable double occupancy room shared with one other student in a study-focused environment.",
			Amenities:          sharedAmenities,
			Images:             pick(2, 1, 0),
			AvailabilityStatus: model.StatusAvailable,
			TotalSlots:         2,
			AvailableSlots:     2,
		},
		{
			Name:               "Shared Room B",
			RoomType:           model.RoomTypeDouble,
			Price:              4500,
			SecurityDeposit:    300,
			Description:        "Shared room with good ventilation and natural lighting for budget-conscious students.",
			Amenities:          sharedAmenities,
			Images:             pick(0, 3, 1),
			AvailabilityStatus: model.StatusAvailable,
			TotalSlots:         2,
			AvailableSlots:     1,
		},
		{
			Name:               "Shared Room C",
			RoomType:           model.RoomTypeDouble,
			Price:              4500,
			SecurityDeposit:    300,
			Description:        "Recently renovated shared room in a quiet corner of the hostel.",
			Amenities:          sharedAmenities,
			Images:             pick(4, 2, 0),
			AvailabilityStatus: model.StatusFullyBooked,
			TotalSlots:         2,
			AvailableSlots:     0,
		},
	}
}
