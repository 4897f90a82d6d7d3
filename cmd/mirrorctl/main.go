// mirrorctl runs the classification pipeline from the command line.
package main

func main() {
	Execute()
}
