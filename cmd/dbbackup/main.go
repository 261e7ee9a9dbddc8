// Command dbbackup creates, lists and restores MySQL dumps of the booking
// database.
//
//	dbbackup backup
//	dbbackup list
//	dbbackup restore [file]
//
// restore without a file lists the backups and asks which one to restore.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/iliyamo/flight-booking-api/internal/backup"
	"github.com/iliyamo/flight-booking-api/internal/config"
)

func main() {
	dir := flag.String("dir", backup.DefaultDir, "backup directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-dir path] backup|list|restore [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	config.LoadDotEnv()
	tool := backup.New(config.LoadDB())
	tool.Dir = *dir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch flag.Arg(0) {
	case "backup":
		var path string
		if path, err = tool.Backup(ctx); err == nil {
			fmt.Printf("Backup completed successfully: %s\n", path)
		}
	case "list":
		_, err = printList(tool)
	case "restore":
		if file := flag.Arg(1); file != "" {
			err = restore(ctx, tool, file)
		} else {
			err = interactiveRestore(ctx, tool, os.Stdin)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("dbbackup: %v", err)
	}
}

func printList(tool *backup.Tool) ([]backup.Info, error) {
	list, err := tool.List()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		fmt.Println("No backup files found.")
		return nil, nil
	}
	fmt.Println("\nAvailable Backups:")
	for i, b := range list {
		fmt.Printf("%d. %s (%.2f MB, %s)\n", i+1, b.Name, b.SizeMB, b.Modified.Format("2006-01-02 15:04:05"))
	}
	return list, nil
}

func restore(ctx context.Context, tool *backup.Tool, path string) error {
	if err := tool.Restore(ctx, path); err != nil {
		return err
	}
	fmt.Println("Database restored successfully!")
	return nil
}

func interactiveRestore(ctx context.Context, tool *backup.Tool, in io.Reader) error {
	list, err := printList(tool)
	if err != nil || len(list) == 0 {
		return err
	}
	r := bufio.NewReader(in)

	fmt.Print("\nEnter the number of the backup to restore (or 0 to cancel): ")
	line, _ := r.ReadString('\n')
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Println("Please enter a valid number.")
		return nil
	}
	if n == 0 {
		return nil
	}
	if n < 1 || n > len(list) {
		fmt.Println("Invalid selection.")
		return nil
	}

	chosen := list[n-1]
	fmt.Printf("Are you sure you want to restore from %s? This will overwrite the current database. (y/n): ", chosen.Name)
	answer, _ := r.ReadString('\n')
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return nil
	}
	return restore(ctx, tool, chosen.Path)
}
