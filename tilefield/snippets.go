package tilefield

// DefaultSnippets are the code fragments floated behind the site.
var DefaultSnippets = []string{
	"package main",
	"func main() {",
	"  r := gin.Default()",
	`  r.GET("/", home)`,
	`  r.Run(":8080")`,
	"}",
	"ctx, cancel := context.WithCancel(ctx)",
	"defer cancel()",
	"g, ctx := errgroup.WithContext(ctx)",
	"select {",
	"case <-ctx.Done():",
	"  return ctx.Err()",
	"}",
	"import React from 'react'",
	"const [state, setState] = useState()",
	"useEffect(() => fetchData(), [])",
	"return <div>Hello World!</div>",
	"public class Main {",
	`  System.out.println("Hello Java!");`,
	"@RestController",
	`@GetMapping("/api/data")`,
	"items.stream().filter(Objects::nonNull)",
	"SELECT * FROM projects;",
	"git commit -m \"ship it\"",
}
