package seed

import (
	"database/sql"
	"fmt"
	"log"

	"kaamsaathi-backend/models"

	"github.com/lib/pq"
)

// workerSeed - sample worker profiles for an empty database
type workerSeed struct {
	Name          string
	Category      string
	Rating        float64
	ReviewCount   int
	DailyWage     float64
	Experience    int
	Location      string
	Available     bool
	Skills        []string
	Description   string
	DescriptionHi string
}

var sampleWorkers = []workerSeed{
	{
		Name:          "Rajesh Kumar",
		Category:      models.CategoryElectrician,
		Rating:        4.8,
		ReviewCount:   127,
		DailyWage:     800,
		Experience:    8,
		Location:      "Sector 15, Delhi",
		Available:     true,
		Skills:        []string{"Wiring", "Panel Installation", "Fault Diagnosis"},
		Description:   "Certified electrician with 8 years of experience in residential and commercial electrical systems.",
		DescriptionHi: "घरेलू और व्यावसायिक विद्युत प्रणालियों में 8 वर्षों के अनुभव के साथ प्रमाणित इलेक्ट्रीशियन।",
	},
	{
		Name:          "Amit Singh",
		Category:      models.CategoryPlumber,
		Rating:        4.6,
		ReviewCount:   95,
		DailyWage:     700,
		Experience:    6,
		Location:      "Dwarka, Delhi",
		Available:     true,
		Skills:        []string{"Pipe Fitting", "Leak Repair", "Sanitary Installation"},
		Description:   "Expert plumber specializing in bathroom fittings and emergency leak repairs.",
		DescriptionHi: "बाथरूम फिटिंग और आपातकालीन रिसाव मरम्मत में विशेषज्ञ प्लंबर।",
	},
	{
		Name:          "Suresh Mistry",
		Category:      models.CategoryCarpenter,
		Rating:        4.9,
		ReviewCount:   200,
		DailyWage:     900,
		Experience:    12,
		Location:      "Noida, UP",
		Available:     false,
		Skills:        []string{"Furniture Making", "Polishing", "Door Installation"},
		Description:   "Master carpenter known for custom furniture and intricate woodworks.",
		DescriptionHi: "कस्टम फर्नीचर और जटिल लकड़ी के काम के लिए जाने जाने वाले मास्टर बढ़ई।",
	},
	{
		Name:          "Vikram Das",
		Category:      models.CategoryWhitewasher,
		Rating:        4.7,
		ReviewCount:   150,
		DailyWage:     600,
		Experience:    5,
		Location:      "Gurgaon, Haryana",
		Available:     true,
		Skills:        []string{"Wall Painting", "Texture Design", "Waterproofing"},
		Description:   "Professional painter with expertise in modern texture designs and waterproofing.",
		DescriptionHi: "आधुनिक बनावट डिजाइन और वॉटरप्रूफिंग में विशेषज्ञता वाले पेशेवर पेंटर।",
	},
}

// SeedWorkers fills the workers table with sample profiles when it is empty
func SeedWorkers(db *sql.DB) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM workers").Scan(&count)
	if err != nil {
		log.Printf("Workers count error: %v", err)
		return
	}

	if count > 0 {
		fmt.Printf("✅ Workers table already has %d profiles\n", count)
		return
	}

	fmt.Println("🌱 Seeding sample workers...")

	for _, w := range sampleWorkers {
		_, err := db.Exec(`
			INSERT INTO workers (name, category, rating, review_count, daily_wage, experience,
			                     location, available, skills, description, description_hi)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, w.Name, w.Category, w.Rating, w.ReviewCount, w.DailyWage, w.Experience,
			w.Location, w.Available, pq.Array(w.Skills), w.Description, w.DescriptionHi)

		if err != nil {
			log.Printf("Worker seed error (%s): %v", w.Name, err)
			continue
		}
		fmt.Printf("   Created worker: %s (%s)\n", w.Name, w.Category)
	}

	fmt.Println("✅ Worker seeding finished")
}
