package seeder

// Owner describes the account that owns the public default portfolio.
type Owner struct {
	Username  string
	Password  string
	Name      string
	Email     string
	Education string
	GitHub    string
	LinkedIn  string
	Website   string
}

func DefaultOwner(username, password string) Owner {
	return Owner{
		Username:  username,
		Password:  password,
		Name:      "Portfolio Owner",
		Email:     "owner@example.com",
		Education: "Bachelor of Computer Science",
		GitHub:    "https://github.com/",
		LinkedIn:  "https://linkedin.com/",
	}
}

// Defaults returns the seeders for a fresh install in dependency order.
func Defaults(owner Owner) []Seeder {
	return []Seeder{
		OwnerSeeder{Owner: owner},
		SkillsSeeder{},
		ProjectsSeeder{},
		WorkExperienceSeeder{Username: owner.Username},
	}
}
