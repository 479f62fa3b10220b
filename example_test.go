package koheesio_test

import (
	"context"
	"fmt"
	"log"

	"github.com/BrendBraeckmans/koheesio"
	"github.com/BrendBraeckmans/koheesio/pkg/config"
	"github.com/BrendBraeckmans/koheesio/pkg/pipeline"
	"github.com/BrendBraeckmans/koheesio/pkg/steps"
)

func ExampleRun() {
	greet, err := steps.NewTemplateTransform("greet", "hello {{.Config.user}}")
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.FromMap(map[string]any{"user": "world"})

	out, err := koheesio.Run(context.Background(), greet, cfg, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Field("result"))
	// Output: hello world
}

func ExampleDefinition_BuildTask() {
	def, err := koheesio.ParseDefinition([]byte(`
name: stamp
steps:
  - name: render
    kind: transform.template
    params:
      template: '{{.Input}} from {{.Config.app}}'
    requires:
      - path: app
        type: string
`))
	if err != nil {
		log.Fatal(err)
	}

	task, err := def.BuildTask()
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.FromMap(map[string]any{"app": "koheesio"})
	out, err := pipeline.Run(context.Background(), task, cfg, "greetings")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Field("result"))
	// Output: greetings from koheesio
}
