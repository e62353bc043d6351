package main

type Project struct {
	Title       string
	Description string
	Tags        []string
	URL         string
}

type SkillGroup struct {
	Name   string
	Skills []string
}

var (
	HeroTitle    = "Hi, I'm KK."
	HeroSubtitle = `Full-stack developer building fast, friendly software, from Go services to React front ends.`

	AboutMe = `I like building software that is useful and a little bit fun, and I'm always curious about how
	things work behind the scenes. Most of my projects start as a small idea and turn into an excuse to learn
	something new, whether that's a different language, a new tool or a tricky problem.
	Away from the keyboard you'll find me hiking, reading or tinkering with hardware.`

	Projects = []Project{
		{
			Title: "Logsy",
			Description: `A journaling app with tagging, full-text search and weekly summaries, built with a Go API
	and a React front end.`,
			Tags: []string{"Go", "React", "SQLite"},
			URL:  "https://github.com/kkdev/logsy",
		},
		{
			Title: "Inventory Service",
			Description: `A Spring Boot REST service for small warehouses with stock alerts, barcode lookups and
	a streaming export of audit history.`,
			Tags: []string{"Java", "Spring Boot", "PostgreSQL"},
			URL:  "https://github.com/kkdev/inventory",
		},
		{
			Title: "Portfolio",
			Description: `This site: Gin and HTMX on the server, a floating code background driven by a small
	tile simulation, and a contact form relayed through a transactional email API.`,
			Tags: []string{"Go", "Gin", "HTMX"},
			URL:  "https://github.com/kkdev/portfolio",
		},
	}

	Skills = []SkillGroup{
		{Name: "Languages", Skills: []string{"Go", "TypeScript", "Java", "SQL"}},
		{Name: "Frontend", Skills: []string{"React", "HTMX", "Tailwind CSS", "Three.js"}},
		{Name: "Backend", Skills: []string{"Gin", "Spring Boot", "Node.js", "REST"}},
		{Name: "Tooling", Skills: []string{"Docker", "Git", "GitHub Actions", "Linux"}},
	}
)
