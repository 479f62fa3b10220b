/*
Package pipeline implements the composition and execution core: the Step
contract, its aggregation into ordered Tasks, and the typed Output record
both produce.

A Step validates its declared configuration needs against a config.Context,
executes domain logic, and returns an Output checked against its declared
schema. A Task is an ordered list of Steps that itself satisfies the Step
contract, so compositions nest to arbitrary depth.

	reader := steps.NewFileReader("read-users", "users.csv")
	render, err := steps.NewTemplateTransform("render", "{{ len .Input }} bytes")
	if err != nil {
		log.Fatal(err)
	}

	task := pipeline.NewTask("etl", []pipeline.Step{reader, render},
		pipeline.WithChainField("content"),
		pipeline.WithTrace(),
	)

	out, err := pipeline.Run(ctx, task, cfg, nil)
	if err != nil {
		log.Fatalf("failed at %s: %v", pipeline.Origin(err), err)
	}
	fmt.Println(out.Field("result"))

Execution is strictly sequential within a task. Errors are never swallowed
or retried: the first failing child aborts the task, and the returned error
chain identifies the originating leaf, its position, and every enclosing
task. Side effects performed by completed children are not rolled back.
*/
package pipeline
