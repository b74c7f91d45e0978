package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bryantbrewster/StrengthJournal/tests/helpers"
	"github.com/joho/godotenv"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a MariaDB testcontainer for local development against a real database.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file (DB_IMAGE overrides the default image)

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var mariadb *helpers.MariaDBContainer
	go func() {
		var err error
		mariadb, err = helpers.StartMariaDB(nil)
		if err != nil {
			log.Fatalf("Failed to start MariaDB container: %v\n", err)
		}
		log.Printf("Export for the server:\n")
		log.Printf("  DB_TYPE=mysql DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s DB_PASSWORD=%s\n",
			mariadb.Host, mariadb.Port, mariadb.Database, mariadb.User, mariadb.Password)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	if mariadb != nil {
		mariadb.Terminate(nil)
	}
}
