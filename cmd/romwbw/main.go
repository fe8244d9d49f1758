// Command romwbw runs a RomWBW HBIOS ROM image against a real
// github.com/remogatto/z80 CPU core, servicing HBIOS calls in host code
// instead of guest firmware (spec.md §1).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/remogatto/z80"
	"github.com/spf13/cobra"

	internalhostio "romwbw/internal/hostio"
	"romwbw/pkg/cpuadapt"
	"romwbw/pkg/hbios"
	"romwbw/pkg/hddisk"
	"romwbw/pkg/hostio"
	"romwbw/pkg/memdisk"
	"romwbw/pkg/membank"
	"romwbw/pkg/romboot"
	"romwbw/pkg/signalport"
)

var (
	romPath       string
	diskFlags     []string
	romAppFlags   []string
	md0Banks      uint
	md1FirstBank  uint
	md1BankCount  uint
	blockingInput bool
	strictIO      bool
	debug         bool
	escapeChar    string
	maxInstr      uint64
)

var rootCmd = &cobra.Command{
	Use:   "romwbw --rom <image>",
	Short: "RomWBW HBIOS host emulator",
	Long: `romwbw runs a RomWBW ROM image by executing guest Z80 code on a
real CPU core and intercepting HBIOS calls (port dispatch and trap-PC)
in host Go code, rather than in guest firmware.

EXAMPLES:
  romwbw --rom rcz180.rom
  romwbw --rom rcz180.rom --disk=0=hd0.img --disk=1=hd1.img
  romwbw --rom rcz180.rom --rom-app=Z=ZORK=zork.bin`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&romPath, "rom", "", "ROM image to load (required)")
	rootCmd.Flags().StringArrayVar(&diskFlags, "disk", nil, "unit=path[:slices] for a file-backed hard-disk unit (repeatable)")
	rootCmd.Flags().StringArrayVar(&romAppFlags, "rom-app", nil, "key=name=path for a ROM-application boot entry (repeatable)")
	rootCmd.Flags().UintVar(&md0Banks, "md0-banks", 4, "RAM-disk bank count for memory-disk unit 0 (0 disables it)")
	rootCmd.Flags().UintVar(&md1FirstBank, "md1-first-bank", 0, "first ROM bank backing memory-disk unit 1")
	rootCmd.Flags().UintVar(&md1BankCount, "md1-banks", 0, "ROM-disk bank count for memory-disk unit 1 (0 disables it)")
	rootCmd.Flags().BoolVar(&blockingInput, "blocking-input", false, "block CIO input on an empty queue instead of returning StatusTimeout")
	rootCmd.Flags().BoolVar(&strictIO, "strict-io", false, "recorded in the HBIOS dispatch config; no handler reads it, so port and host I/O errors are not made fatal")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose slog output")
	rootCmd.Flags().StringVar(&escapeChar, "escape-char", "^]", "console escape character that quits the emulator")
	rootCmd.Flags().Uint64Var(&maxInstr, "max-instructions", 0, "safety stop after N instructions (0 = unlimited)")
	rootCmd.MarkFlagRequired("rom")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	esc, err := parseEscapeChar(escapeChar)
	if err != nil {
		return err
	}

	romBytes, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM image: %w", err)
	}

	host, err := internalhostio.New(logger, true)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer host.Close()

	mem := membank.New()

	bootCfg := romboot.Config{
		Topology: romboot.BankTopology{
			CommonBank: membank.CommonBank,
			UserBank:   membank.ShadowRAMBank + 1,
			BiosBank:   romboot.HCBBank,
			AuxBank:    membank.ShadowRAMBank + 1,
		},
	}
	if md0Banks > 0 {
		bootCfg.MemDiskKinds[0] = romboot.DiskUnitMemRAM
		bootCfg.Topology.RAMDiskFirstBank = membank.ShadowRAMBank + 1
		bootCfg.Topology.RAMDiskBankCount = byte(md0Banks)
	}
	if md1BankCount > 0 {
		bootCfg.MemDiskKinds[1] = romboot.DiskUnitMemROM
		bootCfg.Topology.ROMDiskFirstBank = byte(md1FirstBank)
		bootCfg.Topology.ROMDiskBankCount = byte(md1BankCount)
	}

	disks := make([]diskSpec, 0, len(diskFlags))
	for _, f := range diskFlags {
		spec, err := parseDiskFlag(f)
		if err != nil {
			return err
		}
		disks = append(disks, spec)
		bootCfg.HardDiskPresent[spec.Unit] = true
		if spec.Slices > 0 {
			bootCfg.HardDiskSlices[spec.Unit] = spec.Slices
		}
	}

	if err := romboot.Init(mem, romBytes, bootCfg); err != nil {
		return fmt.Errorf("initializing ROM/HCB: %w", err)
	}

	d := hbios.New(mem, host, hbios.Config{
		BlockingInput: blockingInput,
		StrictIO:      strictIO,
		Debug:         debug,
		EscapeChar:    esc,
	})

	// Memory disks are wired from the HCB's own bank-topology block
	// (spec.md §4.3), not straight from the CLI flags, so that the
	// guest-visible topology and the host engine always agree.
	topo := romboot.ReadBankTopology(mem)
	if topo.RAMDiskBankCount > 0 {
		d.MemDisks[0] = &memdisk.MemDisk{
			FirstBank: topo.RAMDiskFirstBank,
			BankCount: int(topo.RAMDiskBankCount),
			Enabled:   true,
		}
	}
	if topo.ROMDiskBankCount > 0 {
		d.MemDisks[1] = &memdisk.MemDisk{
			FirstBank: topo.ROMDiskFirstBank,
			BankCount: int(topo.ROMDiskBankCount),
			IsROM:     true,
			Enabled:   true,
		}
	}

	for _, spec := range disks {
		f, err := host.DiskOpen(spec.Path, hostio.ModeReadWrite)
		if err != nil {
			return fmt.Errorf("opening disk image %q: %w", spec.Path, err)
		}
		size, err := f.Size()
		if err != nil {
			return fmt.Errorf("sizing disk image %q: %w", spec.Path, err)
		}
		d.HardDisks[spec.Unit] = &hddisk.Unit{Path: spec.Path, File: f, Host: host, Size: size}
	}

	for _, f := range romAppFlags {
		a, err := parseRomAppFlag(f)
		if err != nil {
			return err
		}
		d.RegisterRomApp(hbios.RomApp{DisplayName: a.Name, FilePath: a.Path, BootKey: a.Key})
	}

	sig := signalport.New()
	ports := &hbios.Ports{D: d, Sig: sig}
	cpu := z80.NewZ80(mem, ports)
	regs := cpuadapt.New(cpu)
	ports.Regs = regs

	d.ResetFunc = func() {
		regs.SetPC(0)
		regs.SetSP(0xFFFF)
		d.ResetHeap()
		d.ResetRamInit()
		d.ClearWaitingForInput()
		sig.Reset()
	}

	logger.Info("romwbw starting", "rom", romPath, "disks", len(disks))

	var instrCount uint64
	for {
		if c, ok := host.PeekInput(); ok && c == int32(esc) {
			host.ReadChar()
			logger.Info("escape character received, stopping")
			break
		}

		pc := cpu.PC()
		if sig.IsTrapAddress(pc) {
			ports.HandleTrapPC()
			continue
		}

		cpu.DoOpcode()

		if cpu.Halted && cpu.IFF1 == 0 {
			logger.Info("CPU halted with interrupts disabled, stopping")
			break
		}

		instrCount++
		if maxInstr > 0 && instrCount >= maxInstr {
			logger.Info("instruction limit reached, stopping", "count", instrCount)
			break
		}
	}

	return nil
}
