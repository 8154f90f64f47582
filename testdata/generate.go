//go:build ignore

// Generates sales.parquet and sales.csv for trying the grpagg command:
//
//	go run testdata/generate.go
//	grpagg -by shop -agg amount=sum,mean testdata/sales.parquet
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

type Sale struct {
	Shop   string  `parquet:"shop"`
	Region string  `parquet:"region"`
	Amount int64   `parquet:"amount"`
	Price  float64 `parquet:"price"`
}

func main() {
	sales := []Sale{
		{Shop: "A", Region: "north", Amount: 10, Price: 2.5},
		{Shop: "A", Region: "north", Amount: 20, Price: 3.0},
		{Shop: "B", Region: "south", Amount: 5, Price: 9.9},
		{Shop: "C", Region: "south", Amount: 12, Price: 1.2},
		{Shop: "B", Region: "north", Amount: 7, Price: 4.4},
	}

	dir := "testdata"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	file, err := os.Create(filepath.Join(dir, "sales.parquet"))
	if err != nil {
		log.Fatal(err)
	}
	writer := parquet.NewGenericWriter[Sale](file)
	if _, err := writer.Write(sales); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
	if err := file.Close(); err != nil {
		log.Fatal(err)
	}

	csvFile, err := os.Create(filepath.Join(dir, "sales.csv"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(csvFile, "shop,region,amount,price")
	for _, s := range sales {
		fmt.Fprintf(csvFile, "%s,%s,%d,%g\n", s.Shop, s.Region, s.Amount, s.Price)
	}
	if err := csvFile.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated sales.parquet and sales.csv with %d rows in %s", len(sales), dir)
}
