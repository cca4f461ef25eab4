package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           harmonicd API
// @version         1.0
// @description     HTTP API for parallel-slot allocation and Operator context sharing across a multi-model stack.
//
// @contact.name   harmonicd maintainers
// @contact.url    https://github.com/your-org/harmonicd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
