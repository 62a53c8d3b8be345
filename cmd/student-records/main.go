// Command student-records runs the student record service.
//
//	student-records serve --config=config/local.yaml
//	student-records demo
//
// or, with the environment variable:
//
//	CONFIG_PATH=config/local.yaml student-records serve
package main

func main() {
	Execute()
}
