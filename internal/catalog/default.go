package catalog

// Default returns the built-in catalog, used whenever the configured
// catalog file is missing or unreadable: five fixed sections, six
// exercises each.
func Default() *Catalog {
	return &Catalog{
		Sections: []Section{
			{
				Name: "lower",
				Exercises: []Exercise{
					{Name: "Squats", Hint: "Deep, controlled"},
					{Name: "Jump Squats"},
					{Name: "Walking Lunges"},
					{Name: "Bulgarian Split Squats"},
					{Name: "Glute Bridges"},
					{Name: "Single-Leg Squats", Hint: "Pistol progression"},
				},
			},
			{
				Name: "upper",
				Exercises: []Exercise{
					{Name: "Push-Ups", Hint: "Basic → Diamond → Wide → Decline"},
					{Name: "Pike Push-Ups"},
					{Name: "Explosive Push-Ups", Hint: "Clap if possible"},
					{Name: "Dips", Hint: "Chair/bed"},
					{Name: "Handstand Hold", Hint: "Against wall"},
					{Name: "Plank to Push-Up (Up-Down Planks)", Hint: "30–45 sec • alternate lead arm"},
				},
			},
			{
				Name: "core",
				Exercises: []Exercise{
					{Name: "Plank"},
					{Name: "Side Plank"},
					{Name: "Mountain Climbers"},
					{Name: "Hollow Body Hold"},
					{Name: "V-Ups"},
					{Name: "Dead Bug"},
				},
			},
			{
				Name: "speed",
				Exercises: []Exercise{
					{Name: "Sprinting", Hint: "10–30 sec bursts"},
					{Name: "High Knees"},
					{Name: "Burpees"},
					{Name: "Jump Lunges"},
					{Name: "Skater Jumps"},
					{Name: "Shadow Boxing"},
				},
			},
			{
				Name: "mobility",
				Exercises: []Exercise{
					{Name: "Deep Squat Hold"},
					{Name: "Hip Openers"},
					{Name: "Hamstring Stretch"},
					{Name: "Shoulder Circles"},
					{Name: "Dynamic Leg Swings"},
					{Name: "World's Greatest Stretch"},
				},
			},
		},
	}
}
