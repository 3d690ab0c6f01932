// This file is part of efr32sim.
//
// efr32sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// efr32sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with efr32sim.  If not, see <https://www.gnu.org/licenses/>.

package prs

// Source is a producer of PRS signals. The Sel field is the value of the
// SOURCESEL field that selects the source.
type Source struct {
	Name    string
	Sel     uint32
	Signals []string
}

// sources available for selection by the SOURCESEL field of a channel. a
// SIGSEL value beyond the number of signals selects a signal that is always
// low.
var sources = []Source{
	{Name: "NONE", Sel: 0x00},
	{Name: "IADC0", Sel: 0x01, Signals: []string{"SCANENTRYDONE", "SCANTABLEDONE", "SINGLEDONE"}},
	{Name: "LETIMER0", Sel: 0x04, Signals: []string{"CH0", "CH1"}},
	{Name: "RTCC", Sel: 0x08, Signals: []string{"CCV0", "CCV1", "CCV2"}},
	{Name: "BURTC", Sel: 0x0c, Signals: []string{"COMP", "OVERFLOW"}},
	{Name: "GPIO", Sel: 0x10, Signals: []string{"PIN0", "PIN1", "PIN2", "PIN3", "PIN4", "PIN5", "PIN6", "PIN7"}},
	{Name: "TIMER0", Sel: 0x14, Signals: []string{"UF", "OF", "CC0", "CC1", "CC2"}},
	{Name: "TIMER1", Sel: 0x15, Signals: []string{"UF", "OF", "CC0", "CC1", "CC2"}},
	{Name: "TIMER2", Sel: 0x16, Signals: []string{"UF", "OF", "CC0", "CC1", "CC2"}},
	{Name: "TIMER3", Sel: 0x17, Signals: []string{"UF", "OF", "CC0", "CC1", "CC2"}},
	{Name: "USART0", Sel: 0x1c, Signals: []string{"IRTX", "RTS", "RXDATA", "TX", "TXC"}},
	{Name: "USART1", Sel: 0x1d, Signals: []string{"IRTX", "RTS", "RXDATA", "TX", "TXC"}},
	{Name: "CMU", Sel: 0x24, Signals: []string{"CLKOUT0", "CLKOUT1", "CLKOUT2"}},
	{Name: "MODEM", Sel: 0x30, Signals: []string{"FRAMEDET", "PREDET", "TIMDET", "FRAMESENT", "SYNCSENT", "EOF"}},
	{Name: "RAC", Sel: 0x32, Signals: []string{"ACTIVE", "LNAEN", "PAEN", "RX", "TX", "CTIOUT0", "CTIOUT1", "CTIOUT2"}},
	{Name: "CORE", Sel: 0x3a, Signals: []string{"CTIOUT0", "CTIOUT1", "CTIOUT2", "CTIOUT3"}},
}

// consumer describes one CONSUMER_* register. consumers with the sync flag
// set can also select a synchronous channel with the SPRSSEL field.
type consumer struct {
	name string
	sync bool
}

// consumer registers in offset order, starting at consumerBase.
var consumers = []consumer{
	{name: "CMU_CALDN"},
	{name: "CMU_CALUP"},
	{name: "IADC0_SCANTRIGGER", sync: true},
	{name: "IADC0_SINGLETRIGGER", sync: true},
	{name: "LDMAXBAR_DMAREQ0"},
	{name: "LDMAXBAR_DMAREQ1"},
	{name: "LETIMER0_CLEAR"},
	{name: "LETIMER0_START"},
	{name: "LETIMER0_STOP"},
	{name: "MODEM_DIN"},
	{name: "RAC_CLR"},
	{name: "RAC_CTIIN0"},
	{name: "RAC_CTIIN1"},
	{name: "RAC_CTIIN2"},
	{name: "RAC_CTIIN3"},
	{name: "RAC_FORCETX"},
	{name: "RAC_RXDIS"},
	{name: "RAC_RXEN"},
	{name: "RAC_TXEN"},
	{name: "RTCC_CC0"},
	{name: "RTCC_CC1"},
	{name: "RTCC_CC2"},
	{name: "CORE_CTIIN0"},
	{name: "CORE_CTIIN1"},
	{name: "CORE_CTIIN2"},
	{name: "CORE_CTIIN3"},
	{name: "TIMER0_CC0"},
	{name: "TIMER0_CC1"},
	{name: "TIMER0_CC2"},
	{name: "TIMER0_DTI"},
	{name: "TIMER0_DTIFS1"},
	{name: "TIMER0_DTIFS2"},
	{name: "TIMER1_CC0"},
	{name: "TIMER1_CC1"},
	{name: "TIMER1_CC2"},
	{name: "TIMER1_DTI"},
	{name: "TIMER1_DTIFS1"},
	{name: "TIMER1_DTIFS2"},
	{name: "USART0_CLK"},
	{name: "USART0_IR"},
	{name: "USART0_RX"},
	{name: "USART0_TRIGGER"},
	{name: "WDOG0_SRC0"},
	{name: "WDOG0_SRC1"},
}

// names of the FNSEL truth tables.
var fnselEnums = map[uint32]string{
	0x0: "LOGICAL_ZERO",
	0x1: "A_NOR_B",
	0x2: "NOT_A_AND_B",
	0x3: "NOT_A",
	0x4: "A_AND_NOT_B",
	0x5: "NOT_B",
	0x6: "A_XOR_B",
	0x7: "A_NAND_B",
	0x8: "A_AND_B",
	0x9: "A_XNOR_B",
	0xa: "B",
	0xb: "NOT_A_OR_B",
	0xc: "A",
	0xd: "A_OR_NOT_B",
	0xe: "A_OR_B",
	0xf: "LOGICAL_ONE",
}
